package circuit

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"qsim/internal/gate"
	"qsim/internal/qerr"
)

// Document is the on-disk form of a circuit. JSON documents decode too, since
// YAML is a superset of JSON.
//
//	qubits: 2
//	gates:
//	  - {gate: H, qubit: 0, step: 0}
//	  - {gate: CNOT, control: 0, target: 1, step: 1}
//	  - {gate: RZ, qubit: 1, step: 2, angle: pi/4}
type Document struct {
	Qubits int            `yaml:"qubits" json:"qubits"`
	Gates  []DocumentGate `yaml:"gates,omitempty" json:"gates,omitempty"`
}

// DocumentGate is one placed gate. Single-qubit gates set Qubit; CNOT sets
// Control and Target. Angle accepts plain numbers and pi expressions.
type DocumentGate struct {
	Gate    string `yaml:"gate" json:"gate"`
	Step    int    `yaml:"step" json:"step"`
	Qubit   *int   `yaml:"qubit,omitempty" json:"qubit,omitempty"`
	Control *int   `yaml:"control,omitempty" json:"control,omitempty"`
	Target  *int   `yaml:"target,omitempty" json:"target,omitempty"`
	Angle   string `yaml:"angle,omitempty" json:"angle,omitempty"`
}

// Decode reads a circuit document and builds the circuit it describes.
func Decode(r io.Reader) (*Circuit, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, qerr.New(qerr.ParseError, "empty circuit document")
		}
		return nil, qerr.New(qerr.ParseError, "decode circuit document: %v", err)
	}
	return doc.Build()
}

// Build converts the document into a validated circuit.
func (d *Document) Build() (*Circuit, error) {
	if err := checkWidth(d.Qubits); err != nil {
		return nil, err
	}
	c := New(d.Qubits)
	for i, g := range d.Gates {
		anchor, op, err := g.op()
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		if err := c.SetGate(anchor, g.Step, op); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return c, nil
}

func (g DocumentGate) op() (int, gate.Op, error) {
	k, err := gate.ParseKind(g.Gate)
	if err != nil {
		return 0, gate.Op{}, qerr.Locate(err, -1, g.Step)
	}

	if k.Arity() == 2 {
		switch {
		case g.Control == nil || g.Target == nil:
			return 0, gate.Op{}, qerr.New(qerr.InvalidGateTarget, "%s needs control and target", k).At(-1, g.Step).WithGate(k.String())
		case g.Qubit != nil:
			return 0, gate.Op{}, qerr.New(qerr.InvalidGateTarget, "%s takes control and target, not qubit", k).At(*g.Qubit, g.Step).WithGate(k.String())
		case g.Angle != "":
			return 0, gate.Op{}, qerr.New(qerr.InvalidGateParameter, "%s takes no angle", k).At(*g.Control, g.Step).WithGate(k.String())
		}
		return *g.Control, gate.Controlled(*g.Control, *g.Target), nil
	}

	if g.Control != nil || g.Target != nil {
		return 0, gate.Op{}, qerr.New(qerr.InvalidGateTarget, "%s takes a qubit, not control or target", k).At(-1, g.Step).WithGate(k.String())
	}
	if g.Qubit == nil {
		return 0, gate.Op{}, qerr.New(qerr.QubitNotFound, "%s needs a qubit", k).At(-1, g.Step).WithGate(k.String())
	}
	q := *g.Qubit

	if g.Angle == "" {
		return q, gate.New(k, q), nil
	}
	if !k.Parameterized() {
		return 0, gate.Op{}, qerr.New(qerr.InvalidGateParameter, "%s takes no angle", k).At(q, g.Step).WithGate(k.String())
	}
	theta, err := ParseAngle(g.Angle)
	if err != nil {
		return 0, gate.Op{}, qerr.Locate(err, q, g.Step)
	}
	return q, gate.Rotation(k, q, theta), nil
}

// ToDocument captures the circuit in document form.
func (c *Circuit) ToDocument() Document {
	doc := Document{Qubits: c.NumQubits()}
	for _, p := range c.Placements() {
		op := p.Op
		g := DocumentGate{Gate: op.Kind.String(), Step: p.Step}
		if op.Kind.Arity() == 2 {
			control, target := op.Control, op.Target
			g.Control, g.Target = &control, &target
		} else {
			q := op.Target
			g.Qubit = &q
		}
		if op.Angle != nil {
			g.Angle = FormatAngle(*op.Angle)
		}
		doc.Gates = append(doc.Gates, g)
	}
	return doc
}

// Encode writes the circuit as a YAML document.
func Encode(w io.Writer, c *Circuit) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c.ToDocument()); err != nil {
		return fmt.Errorf("encode circuit document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode circuit document: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
