// Package state holds the complex amplitude vector of an n-qubit register.
//
// A Vector is owned by a single simulation run. It is mutated in place by the
// pairwise primitives below and never shared across concurrent runs.
package state

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"qsim/internal/basis"
	"qsim/internal/qerr"
)

// MaxQubits bounds the register size; 2^24 complex128 amplitudes is 256 MiB.
const MaxQubits = 24

// Tolerance is the numeric slack used for probability-mass checks.
const Tolerance = 1e-9

// PairFunc is a 2x2 linear transform on the amplitudes of a basis pair:
// a0 is the component with the acted-on bit clear, a1 with it set.
type PairFunc func(a0, a1 complex128) (complex128, complex128)

// Vector is an n-qubit state vector of 2^n complex amplitudes.
type Vector struct {
	amps      []complex128
	numQubits int
}

// New returns the all-zero basis state |0...0> on n qubits.
func New(n int) (*Vector, error) {
	if n <= 0 {
		return nil, qerr.New(qerr.InvalidDimension, "qubit count must be positive, got %d", n)
	}
	if n > MaxQubits {
		return nil, qerr.New(qerr.InvalidDimension, "qubit count %d exceeds limit %d", n, MaxQubits)
	}
	amps := make([]complex128, basis.Dim(n))
	amps[0] = 1
	return &Vector{amps: amps, numQubits: n}, nil
}

// NumQubits returns n.
func (v *Vector) NumQubits() int { return v.numQubits }

// Len returns 2^n.
func (v *Vector) Len() int { return len(v.amps) }

// Amplitude returns the amplitude at basis index i.
func (v *Vector) Amplitude(i int) complex128 { return v.amps[i] }

// Probability returns the squared magnitude of the amplitude at index i.
func (v *Vector) Probability(i int) float64 {
	return norm(v.amps[i])
}

// Amplitudes returns a copy of the full amplitude vector.
func (v *Vector) Amplitudes() []complex128 {
	out := make([]complex128, len(v.amps))
	copy(out, v.amps)
	return out
}

// Probabilities returns the measurement distribution in index order.
func (v *Vector) Probabilities() []float64 {
	out := make([]float64, len(v.amps))
	for i, a := range v.amps {
		out[i] = norm(a)
	}
	return out
}

// TotalProbability returns the sum of squared magnitudes; 1 for a valid state.
func (v *Vector) TotalProbability() float64 {
	return floats.Sum(v.Probabilities())
}

// Normalized reports whether the total probability is 1 within Tolerance.
func (v *Vector) Normalized() bool {
	return math.Abs(v.TotalProbability()-1) < Tolerance
}

// Clone returns an independent copy of v.
func (v *Vector) Clone() *Vector {
	return &Vector{amps: v.Amplitudes(), numQubits: v.numQubits}
}

// ApplyPairwise replaces every pair (i, i|mask) with i&mask == 0 by f applied
// to its amplitudes. Each pair is visited exactly once.
func (v *Vector) ApplyPairwise(mask int, f PairFunc) {
	for i := range v.amps {
		if i&mask != 0 {
			continue
		}
		j := i | mask
		v.amps[i], v.amps[j] = f(v.amps[i], v.amps[j])
	}
}

// ApplyControlled is ApplyPairwise restricted to indices whose control bit is set.
// Pairs with the control bit clear are left untouched.
func (v *Vector) ApplyControlled(controlMask, targetMask int, f PairFunc) {
	for i := range v.amps {
		if i&controlMask == 0 || i&targetMask != 0 {
			continue
		}
		j := i | targetMask
		v.amps[i], v.amps[j] = f(v.amps[i], v.amps[j])
	}
}

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the per-qubit marginal distributions.
func (v *Vector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, v.numQubits)
	for i, a := range v.amps {
		p := norm(a)
		for q := range v.numQubits {
			if basis.Bit(i, v.numQubits, q) == 1 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// QSpherePoint is a basis state with non-negligible weight, positioned on the
// Q-sphere by its hamming weight (latitude) and amplitude phase (color).
type QSpherePoint struct {
	Index     int
	Label     string
	Amplitude complex128
	Prob      float64
	Phase     float64
	Hamming   int
}

// QSphere returns the points a Q-sphere renderer draws, in index order.
func (v *Vector) QSphere() []QSpherePoint {
	points := make([]QSpherePoint, 0, len(v.amps))
	for i, a := range v.amps {
		p := norm(a)
		if p <= 1e-10 {
			continue
		}
		points = append(points, QSpherePoint{
			Index:     i,
			Label:     basis.Label(i, v.numQubits),
			Amplitude: a,
			Prob:      p,
			Phase:     cmplx.Phase(a),
			Hamming:   basis.Hamming(i),
		})
	}
	return points
}

func norm(a complex128) float64 {
	re, im := real(a), imag(a)
	return re*re + im*im
}
