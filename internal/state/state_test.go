package state

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsim/internal/basis"
	"qsim/internal/qerr"
)

func TestNewAllZeroState(t *testing.T) {
	v, err := New(3)
	require.NoError(t, err)

	assert.Equal(t, 3, v.NumQubits())
	assert.Equal(t, 8, v.Len())
	assert.Equal(t, complex(1, 0), v.Amplitude(0))
	for i := 1; i < v.Len(); i++ {
		assert.Equal(t, complex(0, 0), v.Amplitude(i), "index %d", i)
	}
	assert.True(t, v.Normalized())
}

func TestNewInvalidDimension(t *testing.T) {
	for _, n := range []int{0, -1, MaxQubits + 1} {
		_, err := New(n)
		require.Error(t, err, "n=%d", n)
		assert.True(t, errors.Is(err, qerr.InvalidDimension), "n=%d", n)
	}
}

func TestAmplitudesIsCopy(t *testing.T) {
	v, err := New(1)
	require.NoError(t, err)

	amps := v.Amplitudes()
	amps[0] = 0

	assert.Equal(t, complex(1, 0), v.Amplitude(0))
}

func TestApplyPairwiseVisitsEachPairOnce(t *testing.T) {
	v, err := New(3)
	require.NoError(t, err)

	visits := 0
	v.ApplyPairwise(basis.Mask(3, 1), func(a0, a1 complex128) (complex128, complex128) {
		visits++
		return a0, a1
	})

	assert.Equal(t, 4, visits)
}

func TestApplyPairwiseConservesMass(t *testing.T) {
	v, err := New(2)
	require.NoError(t, err)

	c := complex(math.Cos(0.3), 0)
	s := complex(math.Sin(0.3), 0)
	rotate := func(a0, a1 complex128) (complex128, complex128) {
		return c*a0 - s*a1, s*a0 + c*a1
	}

	for q := range 2 {
		v.ApplyPairwise(basis.Mask(2, q), rotate)
		assert.InDelta(t, 1.0, v.TotalProbability(), Tolerance)
	}
}

func TestApplyControlledOnlyWhereControlSet(t *testing.T) {
	v, err := New(2)
	require.NoError(t, err)

	swap := func(a0, a1 complex128) (complex128, complex128) { return a1, a0 }

	// Control qubit 0 is |0>, nothing moves.
	v.ApplyControlled(basis.Mask(2, 0), basis.Mask(2, 1), swap)
	assert.Equal(t, complex(1, 0), v.Amplitude(0))

	// Flip qubit 0, then the controlled swap moves |10> to |11>.
	v.ApplyPairwise(basis.Mask(2, 0), swap)
	v.ApplyControlled(basis.Mask(2, 0), basis.Mask(2, 1), swap)
	assert.Equal(t, complex(1, 0), v.Amplitude(3))
	assert.True(t, v.Normalized())
}

func TestCloneIsIndependent(t *testing.T) {
	v, err := New(1)
	require.NoError(t, err)

	c := v.Clone()
	c.ApplyPairwise(1, func(a0, a1 complex128) (complex128, complex128) { return a1, a0 })

	assert.Equal(t, complex(1, 0), v.Amplitude(0))
	assert.Equal(t, complex(1, 0), c.Amplitude(1))
}

func TestQubitProbabilities(t *testing.T) {
	v, err := New(2)
	require.NoError(t, err)

	// |10>: qubit 0 is 1, qubit 1 is 0.
	v.ApplyPairwise(basis.Mask(2, 0), func(a0, a1 complex128) (complex128, complex128) { return a1, a0 })

	probs := v.QubitProbabilities()
	require.Len(t, probs, 2)
	assert.InDelta(t, 1.0, probs[0].Prob1, Tolerance)
	assert.InDelta(t, 1.0, probs[1].Prob0, Tolerance)
}

func TestQSphere(t *testing.T) {
	v, err := New(2)
	require.NoError(t, err)

	h := complex(1/math.Sqrt2, 0)
	v.ApplyPairwise(basis.Mask(2, 1), func(a0, a1 complex128) (complex128, complex128) {
		return h * (a0 + a1), h * (a0 - a1)
	})
	// Z on qubit 1 puts a pi phase on |01>.
	v.ApplyPairwise(basis.Mask(2, 1), func(a0, a1 complex128) (complex128, complex128) { return a0, -a1 })

	points := v.QSphere()
	require.Len(t, points, 2)

	assert.Equal(t, "00", points[0].Label)
	assert.Equal(t, 0, points[0].Hamming)
	assert.InDelta(t, 0.5, points[0].Prob, Tolerance)

	assert.Equal(t, "01", points[1].Label)
	assert.Equal(t, 1, points[1].Hamming)
	assert.InDelta(t, math.Pi, math.Abs(points[1].Phase), Tolerance)
}
