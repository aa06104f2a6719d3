// Package circuit is the input contract of the simulator: an ordered list of
// qubits, each owning an ordered sequence of time-step slots.
//
// Slot t of every qubit forms column t. Columns are applied in order; within a
// column no two operations may touch the same qubit, so a column's operations
// act on disjoint qubits. A two-qubit operation lives in the slot of one of its
// qubits (its anchor) and blocks its partner qubit for that column.
package circuit

import (
	"fmt"

	"qsim/internal/gate"
	"qsim/internal/qerr"
	"qsim/internal/state"
)

// Qubit is one wire of the circuit.
type Qubit struct {
	Label string
	slots []*gate.Op
}

// Len returns the number of slots, including trailing empty ones.
func (q *Qubit) Len() int { return len(q.slots) }

// Placement locates an operation in the circuit.
type Placement struct {
	Qubit int
	Step  int
	Op    gate.Op
}

// Circuit is the ordered qubit/slot model.
type Circuit struct {
	qubits []*Qubit
}

// New creates a circuit with n qubits and no gates.
func New(n int) *Circuit {
	c := &Circuit{}
	for range n {
		c.AddQubit()
	}
	return c
}

// checkWidth rejects a declared register size the simulator could never run.
// Decoders call it before New so a hostile size allocates nothing.
func checkWidth(n int) error {
	if n < 0 {
		return qerr.New(qerr.InvalidDimension, "qubit count must be non-negative, got %d", n)
	}
	if n > state.MaxQubits {
		return qerr.New(qerr.InvalidDimension, "circuit declares %d qubits, limit is %d", n, state.MaxQubits)
	}
	return nil
}

// NumQubits returns the number of qubits.
func (c *Circuit) NumQubits() int { return len(c.qubits) }

// Qubit returns qubit q, or nil if it does not exist.
func (c *Circuit) Qubit(q int) *Qubit {
	if q < 0 || q >= len(c.qubits) {
		return nil
	}
	return c.qubits[q]
}

// AddQubit appends a qubit with an empty gate sequence and returns its index.
// Existing qubits are not modified.
func (c *Circuit) AddQubit() int {
	idx := len(c.qubits)
	c.qubits = append(c.qubits, &Qubit{Label: fmt.Sprintf("q[%d]", idx)})
	return idx
}

// RemoveQubit drops the last qubit together with every operation referencing it.
func (c *Circuit) RemoveQubit() error {
	if len(c.qubits) == 0 {
		return qerr.New(qerr.QubitNotFound, "circuit has no qubits to remove")
	}
	last := len(c.qubits) - 1
	c.qubits = c.qubits[:last]
	for _, q := range c.qubits {
		for t, op := range q.slots {
			if op != nil && op.Touches(last) {
				q.slots[t] = nil
			}
		}
	}
	return nil
}

// SetGate places op at (qubit, step), overwriting what the slot held and
// padding the qubit's sequence with empty slots up to step.
//
// Single-qubit ops are bound to the slot's qubit. A CNOT must name the slot's
// qubit as its control or its target.
func (c *Circuit) SetGate(qubit, step int, op gate.Op) error {
	// A CNOT anchored on an out-of-range control or target is a bad pair,
	// not a missing qubit.
	if op.Kind.Arity() == 2 {
		if err := op.Validate(len(c.qubits)); err != nil {
			return qerr.Locate(err, qubit, step)
		}
	}
	if qubit < 0 || qubit >= len(c.qubits) {
		return qerr.New(qerr.QubitNotFound, "no qubit %d in %d-qubit circuit", qubit, len(c.qubits)).At(qubit, step).WithGate(op.Kind.String())
	}
	if step < 0 {
		return qerr.New(qerr.InvalidStep, "time step must be non-negative").At(qubit, step).WithGate(op.Kind.String())
	}

	if op.Kind.Arity() == 1 {
		op.Target = qubit
		op.Control = -1
	} else if op.Control != qubit && op.Target != qubit {
		return qerr.New(qerr.InvalidGateTarget, "%s placed on qubit %d must use it as control or target", op.Kind, qubit).At(qubit, step).WithGate(op.Kind.String())
	}
	if err := op.Validate(len(c.qubits)); err != nil {
		return qerr.Locate(err, qubit, step)
	}

	for _, q := range op.Qubits() {
		holder, ok := c.holderOf(q, step)
		if ok && holder != qubit {
			return qerr.New(qerr.SlotConflict, "qubit %d is already used at step %d by the gate on qubit %d", q, step, holder).At(q, step).WithGate(op.Kind.String())
		}
	}

	slots := c.qubits[qubit].slots
	for len(slots) <= step {
		slots = append(slots, nil)
	}
	if op.Angle != nil {
		theta := *op.Angle
		op.Angle = &theta
	}
	slots[step] = &op
	c.qubits[qubit].slots = slots
	return nil
}

// ClearGate empties the slot at (qubit, step). Clearing an empty slot is a no-op.
func (c *Circuit) ClearGate(qubit, step int) error {
	if qubit < 0 || qubit >= len(c.qubits) {
		return qerr.New(qerr.QubitNotFound, "no qubit %d in %d-qubit circuit", qubit, len(c.qubits)).At(qubit, step)
	}
	if step < 0 {
		return qerr.New(qerr.InvalidStep, "time step must be non-negative").At(qubit, step)
	}
	if step < len(c.qubits[qubit].slots) {
		c.qubits[qubit].slots[step] = nil
	}
	return nil
}

// ClearAt empties whichever slot uses qubit at step, including a two-qubit
// gate anchored on another qubit.
func (c *Circuit) ClearAt(qubit, step int) {
	if holder, ok := c.holderOf(qubit, step); ok {
		c.qubits[holder].slots[step] = nil
	}
}

// Gate returns the op stored in the slot at (qubit, step).
func (c *Circuit) Gate(qubit, step int) (gate.Op, bool) {
	op := c.slot(qubit, step)
	if op == nil {
		return gate.Op{}, false
	}
	return *op, true
}

// GateAt returns the op that uses qubit at step, wherever it is anchored.
func (c *Circuit) GateAt(qubit, step int) (Placement, bool) {
	holder, ok := c.holderOf(qubit, step)
	if !ok {
		return Placement{}, false
	}
	return Placement{Qubit: holder, Step: step, Op: *c.qubits[holder].slots[step]}, true
}

// Width returns the maximum slot count across qubits.
func (c *Circuit) Width() int {
	w := 0
	for _, q := range c.qubits {
		w = max(w, len(q.slots))
	}
	return w
}

// Column returns the ops of column step in ascending anchor-qubit order.
func (c *Circuit) Column(step int) []Placement {
	var col []Placement
	for qi := range c.qubits {
		if op := c.slot(qi, step); op != nil {
			col = append(col, Placement{Qubit: qi, Step: step, Op: *op})
		}
	}
	return col
}

// Placements returns every op in column-major order.
func (c *Circuit) Placements() []Placement {
	var out []Placement
	for t := range c.Width() {
		out = append(out, c.Column(t)...)
	}
	return out
}

// GateCount returns the number of placed ops.
func (c *Circuit) GateCount() int {
	return len(c.Placements())
}

// Clone returns a deep copy of c.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{qubits: make([]*Qubit, len(c.qubits))}
	for i, q := range c.qubits {
		nq := &Qubit{Label: q.Label, slots: make([]*gate.Op, len(q.slots))}
		for t, op := range q.slots {
			if op == nil {
				continue
			}
			cp := *op
			if op.Angle != nil {
				theta := *op.Angle
				cp.Angle = &theta
			}
			nq.slots[t] = &cp
		}
		out.qubits[i] = nq
	}
	return out
}

func (c *Circuit) slot(qubit, step int) *gate.Op {
	if qubit < 0 || qubit >= len(c.qubits) || step < 0 {
		return nil
	}
	slots := c.qubits[qubit].slots
	if step >= len(slots) {
		return nil
	}
	return slots[step]
}

// holderOf returns the anchor qubit of the op using q at step.
func (c *Circuit) holderOf(q, step int) (int, bool) {
	if op := c.slot(q, step); op != nil {
		return q, true
	}
	for qi := range c.qubits {
		if op := c.slot(qi, step); op != nil && op.Touches(q) {
			return qi, true
		}
	}
	return -1, false
}
