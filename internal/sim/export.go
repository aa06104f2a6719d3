package sim

// Amplitude is a complex amplitude split into its parts for serialization.
type Amplitude struct {
	Re float64 `json:"re" msgpack:"re"`
	Im float64 `json:"im" msgpack:"im"`
}

// Export is the wire form of a Result.
type Export struct {
	RunID       string             `json:"run_id" msgpack:"run_id"`
	NumQubits   int                `json:"num_qubits" msgpack:"num_qubits"`
	Columns     int                `json:"columns" msgpack:"columns"`
	Results     map[string]float64 `json:"results" msgpack:"results"`
	StateVector []Amplitude        `json:"state_vector" msgpack:"state_vector"`
	MostLikely  string             `json:"most_likely" msgpack:"most_likely"`
}

// Export converts r into its serializable form.
func (r *Result) Export() Export {
	amps := r.state.Amplitudes()
	sv := make([]Amplitude, len(amps))
	for i, a := range amps {
		sv[i] = Amplitude{Re: real(a), Im: imag(a)}
	}
	return Export{
		RunID:       r.runID,
		NumQubits:   r.NumQubits(),
		Columns:     r.columns,
		Results:     r.Probabilities(),
		StateVector: sv,
		MostLikely:  r.MostLikely().Label,
	}
}
