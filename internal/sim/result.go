package sim

import (
	"gonum.org/v1/gonum/floats"

	"qsim/internal/basis"
	"qsim/internal/state"
)

// Outcome is one basis state of a result.
type Outcome struct {
	Index       int
	Label       string
	Probability float64
	Amplitude   complex128
}

// Result is the immutable product of one simulation run.
type Result struct {
	runID   string
	columns int
	state   *state.Vector
	probs   []float64
}

func newResult(runID string, v *state.Vector, columns int) *Result {
	return &Result{
		runID:   runID,
		columns: columns,
		state:   v,
		probs:   v.Probabilities(),
	}
}

// RunID identifies the run in logs and exports.
func (r *Result) RunID() string { return r.runID }

// NumQubits returns the register size.
func (r *Result) NumQubits() int { return r.state.NumQubits() }

// Columns returns how many columns were applied.
func (r *Result) Columns() int { return r.columns }

// Probabilities maps each basis label to its probability. The map is a copy.
func (r *Result) Probabilities() map[string]float64 {
	n := r.NumQubits()
	out := make(map[string]float64, len(r.probs))
	for i, p := range r.probs {
		out[basis.Label(i, n)] = p
	}
	return out
}

// Probability returns the probability of the state with the given label.
func (r *Result) Probability(label string) (float64, bool) {
	if len(label) != r.NumQubits() {
		return 0, false
	}
	i, err := basis.ParseLabel(label)
	if err != nil {
		return 0, false
	}
	return r.probs[i], true
}

// Amplitudes returns a copy of the final amplitude vector.
func (r *Result) Amplitudes() []complex128 {
	return r.state.Amplitudes()
}

// Outcomes lists every basis state in index order.
func (r *Result) Outcomes() []Outcome {
	n := r.NumQubits()
	out := make([]Outcome, len(r.probs))
	for i, p := range r.probs {
		out[i] = Outcome{
			Index:       i,
			Label:       basis.Label(i, n),
			Probability: p,
			Amplitude:   r.state.Amplitude(i),
		}
	}
	return out
}

// MostLikely returns the outcome with the highest probability; ties go to
// the lowest index.
func (r *Result) MostLikely() Outcome {
	best := floats.MaxIdx(r.probs)
	return Outcome{
		Index:       best,
		Label:       basis.Label(best, r.NumQubits()),
		Probability: r.probs[best],
		Amplitude:   r.state.Amplitude(best),
	}
}

// Total returns the summed probability, 1 within state.Tolerance.
func (r *Result) Total() float64 {
	return floats.Sum(r.probs)
}

// QubitProbabilities returns each qubit's marginal distribution.
func (r *Result) QubitProbabilities() []state.QubitProbability {
	return r.state.QubitProbabilities()
}

// QSphere returns the Q-sphere points of the final state.
func (r *Result) QSphere() []state.QSpherePoint {
	return r.state.QSphere()
}
