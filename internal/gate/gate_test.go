package gate

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsim/internal/basis"
	"qsim/internal/qerr"
	"qsim/internal/state"
)

const tol = 1e-9

// scrambled returns a 3-qubit state with non-trivial amplitudes and phases.
func scrambled(t *testing.T) *state.Vector {
	t.Helper()
	v, err := state.New(3)
	require.NoError(t, err)
	for _, op := range []Op{
		New(H, 0),
		Rotation(RY, 1, 0.7),
		New(T, 0),
		Controlled(0, 2),
		Rotation(RX, 2, 1.3),
		New(S, 1),
	} {
		require.NoError(t, Apply(v, op))
	}
	return v
}

func allOps(n int) []Op {
	var ops []Op
	for q := range n {
		for _, k := range []Kind{H, X, Z, T, S} {
			ops = append(ops, New(k, q))
		}
		for _, k := range []Kind{RX, RY, RZ} {
			ops = append(ops, Rotation(k, q, 0.913))
		}
		for c := range n {
			if c != q {
				ops = append(ops, Controlled(c, q))
			}
		}
	}
	return ops
}

func assertSameState(t *testing.T, want, got *state.Vector) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for i := range want.Len() {
		if cmplx.Abs(want.Amplitude(i)-got.Amplitude(i)) > tol {
			t.Fatalf("amplitude %d (%s): got %v, want %v", i, basis.Label(i, want.NumQubits()), got.Amplitude(i), want.Amplitude(i))
		}
	}
}

func TestUnitarity(t *testing.T) {
	for _, op := range allOps(3) {
		t.Run(op.String(), func(t *testing.T) {
			v := scrambled(t)
			before := v.TotalProbability()
			require.NoError(t, Apply(v, op))
			assert.InDelta(t, before, v.TotalProbability(), tol)
		})
	}
}

func TestMatricesAreUnitary(t *testing.T) {
	for _, op := range allOps(1) {
		m, err := Matrix(op)
		require.NoError(t, err)

		// (M^dagger M)_{ij} = sum_k conj(M_ki) M_kj
		for i := range 2 {
			for j := range 2 {
				var sum complex128
				for k := range 2 {
					sum += cmplx.Conj(m[k][i]) * m[k][j]
				}
				want := complex(0, 0)
				if i == j {
					want = 1
				}
				assert.InDelta(t, 0, cmplx.Abs(sum-want), tol, "%s entry (%d,%d)", op, i, j)
			}
		}
	}
}

func TestSelfInverseGates(t *testing.T) {
	for _, op := range []Op{New(X, 1), New(Z, 2), New(H, 0), Controlled(0, 1), Controlled(2, 0)} {
		t.Run(op.String(), func(t *testing.T) {
			want := scrambled(t)
			got := want.Clone()
			require.NoError(t, Apply(got, op))
			require.NoError(t, Apply(got, op))
			assertSameState(t, want, got)
		})
	}
}

func TestHadamardPair(t *testing.T) {
	a0, a1 := hadamard(complex(0.6, 0.1), complex(-0.2, 0.3))
	b0, b1 := hadamard(a0, a1)
	assert.InDelta(t, 0, cmplx.Abs(b0-complex(0.6, 0.1)), tol)
	assert.InDelta(t, 0, cmplx.Abs(b1-complex(-0.2, 0.3)), tol)
}

func TestPhaseGates(t *testing.T) {
	tests := []struct {
		op   Op
		want complex128
	}{
		{New(Z, 0), -1},
		{New(S, 0), 1i},
		{New(T, 0), complex(1/math.Sqrt2, 1/math.Sqrt2)},
		{Rotation(RZ, 0, math.Pi), 1i},
	}

	for _, tt := range tests {
		m, err := Matrix(tt.op)
		require.NoError(t, err)
		assert.InDelta(t, 0, cmplx.Abs(m[1][1]-tt.want), tol, "%s |1> phase", tt.op)
		assert.InDelta(t, 0, cmplx.Abs(m[0][1]), tol)
		assert.InDelta(t, 0, cmplx.Abs(m[1][0]), tol)
	}

	// RZ(pi) puts -i on |0>.
	m, err := Matrix(Rotation(RZ, 0, math.Pi))
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(m[0][0]-(-1i)), tol)
}

func TestRotationMatrices(t *testing.T) {
	theta := math.Pi / 3
	c, s := math.Cos(theta/2), math.Sin(theta/2)

	mx, err := Matrix(Rotation(RX, 0, theta))
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(mx[0][0]-complex(c, 0)), tol)
	assert.InDelta(t, 0, cmplx.Abs(mx[0][1]-complex(0, -s)), tol)
	assert.InDelta(t, 0, cmplx.Abs(mx[1][0]-complex(0, -s)), tol)
	assert.InDelta(t, 0, cmplx.Abs(mx[1][1]-complex(c, 0)), tol)

	my, err := Matrix(Rotation(RY, 0, theta))
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(my[0][1]-complex(-s, 0)), tol)
	assert.InDelta(t, 0, cmplx.Abs(my[1][0]-complex(s, 0)), tol)
}

func TestCNOTRespectsBitOrder(t *testing.T) {
	v, err := state.New(2)
	require.NoError(t, err)

	// |10> has qubit 0 set.
	require.NoError(t, Apply(v, New(X, 0)))
	require.NoError(t, Apply(v, Controlled(0, 1)))
	assert.InDelta(t, 1.0, v.Probability(3), tol) // |11>

	// Control on qubit 1 flips qubit 0 back.
	require.NoError(t, Apply(v, Controlled(1, 0)))
	assert.InDelta(t, 1.0, v.Probability(1), tol) // |01>
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		code qerr.Code
	}{
		{"control equals target", Controlled(1, 1), qerr.InvalidGateTarget},
		{"control out of range", Controlled(5, 0), qerr.InvalidGateTarget},
		{"target out of range", Controlled(0, -1), qerr.InvalidGateTarget},
		{"single out of range", New(H, 2), qerr.QubitNotFound},
		{"rotation without angle", New(RX, 0), qerr.InvalidGateParameter},
		{"non-finite angle", Rotation(RY, 0, math.NaN()), qerr.InvalidGateParameter},
		{"angle on fixed gate", Rotation(H, 0, 1), qerr.InvalidGateParameter},
		{"unknown kind", Op{Kind: Kind(42), Control: -1}, qerr.UnsupportedGate},
		{"invalid kind", Op{Kind: Invalid, Control: -1}, qerr.UnsupportedGate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := state.New(2)
			require.NoError(t, err)
			err = Apply(v, tt.op)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
			// Rejected ops leave the state untouched.
			assert.Equal(t, complex(1, 0), v.Amplitude(0))
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"H", H}, {"h", H}, {" rx ", RX}, {"Ry", RY}, {"CNOT", CNOT}, {"cx", CNOT}, {"t", T},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseKind("SWAP")
	assert.True(t, errors.Is(err, qerr.UnsupportedGate))
}

func TestKindProperties(t *testing.T) {
	assert.Len(t, Kinds(), 9)
	for _, k := range Kinds() {
		assert.True(t, k.Valid(), k.String())
	}
	assert.Equal(t, 2, CNOT.Arity())
	assert.Equal(t, 1, RZ.Arity())
	assert.True(t, RZ.Parameterized())
	assert.False(t, T.Parameterized())
	assert.Equal(t, "INVALID", Kind(-3).String())
}

func TestOpQubits(t *testing.T) {
	assert.Equal(t, []int{1, 3}, Controlled(3, 1).Qubits())
	assert.Equal(t, []int{2}, New(X, 2).Qubits())
	assert.True(t, Controlled(3, 1).Touches(3))
	assert.False(t, New(X, 2).Touches(3))
	assert.Equal(t, "CNOT q[3],q[1]", Controlled(3, 1).String())
}
