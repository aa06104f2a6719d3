// Package gate implements the supported gate set as transforms on a state.Vector.
//
// Single-qubit gates act on amplitude pairs through state.Vector.ApplyPairwise
// using the target qubit's mask. CNOT acts through state.Vector.ApplyControlled,
// swapping the target pair only where the control bit is set.
package gate

import (
	"fmt"
	"math"
	"math/cmplx"

	"qsim/internal/basis"
	"qsim/internal/qerr"
	"qsim/internal/state"
)

// Op is one gate application. Control is -1 for single-qubit gates and Angle
// is nil for gates that take no parameter.
type Op struct {
	Kind    Kind
	Target  int
	Control int
	Angle   *float64
}

// New returns a parameterless single-qubit op on target.
func New(k Kind, target int) Op {
	return Op{Kind: k, Target: target, Control: -1}
}

// Rotation returns a rotation op (RX, RY, RZ) by theta radians on target.
func Rotation(k Kind, target int, theta float64) Op {
	return Op{Kind: k, Target: target, Control: -1, Angle: &theta}
}

// Controlled returns a CNOT op.
func Controlled(control, target int) Op {
	return Op{Kind: CNOT, Target: target, Control: control}
}

// Qubits returns the qubits op touches, ascending.
func (op Op) Qubits() []int {
	if op.Kind.Arity() == 2 {
		return []int{min(op.Control, op.Target), max(op.Control, op.Target)}
	}
	return []int{op.Target}
}

// Touches reports whether op acts on qubit q.
func (op Op) Touches(q int) bool {
	if op.Target == q {
		return true
	}
	return op.Kind.Arity() == 2 && op.Control == q
}

// Theta returns the rotation angle, or 0 if none is set.
func (op Op) Theta() float64 {
	if op.Angle == nil {
		return 0
	}
	return *op.Angle
}

// String renders op in a compact form, e.g. "H q[0]", "RX(1.5708) q[1]", "CNOT q[0],q[1]".
func (op Op) String() string {
	switch {
	case op.Kind.Arity() == 2:
		return fmt.Sprintf("%s q[%d],q[%d]", op.Kind, op.Control, op.Target)
	case op.Angle != nil:
		return fmt.Sprintf("%s(%g) q[%d]", op.Kind, *op.Angle, op.Target)
	default:
		return fmt.Sprintf("%s q[%d]", op.Kind, op.Target)
	}
}

// Validate checks op against an n-qubit register.
func (op Op) Validate(n int) error {
	if !op.Kind.Valid() {
		return qerr.New(qerr.UnsupportedGate, "unsupported gate kind %d", int(op.Kind)).WithGate(op.Kind.String())
	}
	name := op.Kind.String()

	if op.Kind.Arity() == 2 {
		if op.Control < 0 || op.Control >= n {
			return qerr.New(qerr.InvalidGateTarget, "control qubit %d out of range [0,%d)", op.Control, n).At(op.Control, -1).WithGate(name)
		}
		if op.Target < 0 || op.Target >= n {
			return qerr.New(qerr.InvalidGateTarget, "target qubit %d out of range [0,%d)", op.Target, n).At(op.Target, -1).WithGate(name)
		}
		if op.Control == op.Target {
			return qerr.New(qerr.InvalidGateTarget, "control and target are both qubit %d", op.Target).At(op.Target, -1).WithGate(name)
		}
	} else if op.Target < 0 || op.Target >= n {
		return qerr.New(qerr.QubitNotFound, "qubit %d out of range [0,%d)", op.Target, n).At(op.Target, -1).WithGate(name)
	}

	switch {
	case op.Kind.Parameterized() && op.Angle == nil:
		return qerr.New(qerr.InvalidGateParameter, "rotation requires an angle").At(op.Target, -1).WithGate(name)
	case op.Kind.Parameterized() && (math.IsNaN(*op.Angle) || math.IsInf(*op.Angle, 0)):
		return qerr.New(qerr.InvalidGateParameter, "angle must be finite, got %v", *op.Angle).At(op.Target, -1).WithGate(name)
	case !op.Kind.Parameterized() && op.Angle != nil:
		return qerr.New(qerr.InvalidGateParameter, "gate takes no angle").At(op.Target, -1).WithGate(name)
	}
	return nil
}

// Apply validates op and applies it to v.
func Apply(v *state.Vector, op Op) error {
	n := v.NumQubits()
	if err := op.Validate(n); err != nil {
		return err
	}

	if op.Kind == CNOT {
		v.ApplyControlled(basis.Mask(n, op.Control), basis.Mask(n, op.Target), swap)
		return nil
	}

	f, err := pairFunc(op)
	if err != nil {
		return err
	}
	v.ApplyPairwise(basis.Mask(n, op.Target), f)
	return nil
}

// pairFunc returns the amplitude-pair transform of a single-qubit op.
func pairFunc(op Op) (state.PairFunc, error) {
	switch op.Kind {
	case X:
		return swap, nil
	case Z:
		return phase(-1), nil
	case H:
		return hadamard, nil
	case S:
		return phase(1i), nil
	case T:
		return phase(cmplx.Exp(complex(0, math.Pi/4))), nil
	case RZ:
		return rz(op.Theta()), nil
	case RX:
		return rx(op.Theta()), nil
	case RY:
		return ry(op.Theta()), nil
	}
	return nil, qerr.New(qerr.UnsupportedGate, "no pair transform for %s", op.Kind).WithGate(op.Kind.String())
}

// Matrix returns the 2x2 unitary of a single-qubit op, rows indexed by output
// component and columns by input component.
func Matrix(op Op) ([2][2]complex128, error) {
	if op.Kind.Arity() != 1 {
		return [2][2]complex128{}, qerr.New(qerr.UnsupportedGate, "%s is not a single-qubit gate", op.Kind).WithGate(op.Kind.String())
	}
	f, err := pairFunc(op)
	if err != nil {
		return [2][2]complex128{}, err
	}
	c00, c10 := f(1, 0)
	c01, c11 := f(0, 1)
	return [2][2]complex128{{c00, c01}, {c10, c11}}, nil
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

func swap(a0, a1 complex128) (complex128, complex128) {
	return a1, a0
}

func hadamard(a0, a1 complex128) (complex128, complex128) {
	return invSqrt2 * (a0 + a1), invSqrt2 * (a0 - a1)
}

// phase multiplies the |1> component by p.
func phase(p complex128) state.PairFunc {
	return func(a0, a1 complex128) (complex128, complex128) {
		return a0, p * a1
	}
}

func rz(theta float64) state.PairFunc {
	neg := cmplx.Exp(complex(0, -theta/2))
	pos := cmplx.Exp(complex(0, theta/2))
	return func(a0, a1 complex128) (complex128, complex128) {
		return neg * a0, pos * a1
	}
}

func rx(theta float64) state.PairFunc {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return func(a0, a1 complex128) (complex128, complex128) {
		return c*a0 + js*a1, js*a0 + c*a1
	}
}

func ry(theta float64) state.PairFunc {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return func(a0, a1 complex128) (complex128, complex128) {
		return c*a0 - s*a1, s*a0 + c*a1
	}
}
