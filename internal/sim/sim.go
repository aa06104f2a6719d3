// Package sim walks a circuit column by column and produces the measurement
// distribution of the final state.
//
// A Simulator holds configuration only. Every run allocates its own
// state.Vector, so a single Simulator may serve concurrent calls.
package sim

import (
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"qsim/internal/circuit"
	"qsim/internal/gate"
	"qsim/internal/qerr"
	"qsim/internal/state"
)

// Simulator runs circuits on a fresh state vector per call.
type Simulator struct {
	log       zerolog.Logger
	maxQubits int
	workers   int
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) { s.log = l }
}

// WithMaxQubits caps the register size. Values outside (0, state.MaxQubits]
// are ignored.
func WithMaxQubits(n int) Option {
	return func(s *Simulator) {
		if n > 0 && n <= state.MaxQubits {
			s.maxQubits = n
		}
	}
}

// WithWorkers bounds the parallelism of SimulateAll.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a Simulator. By default it logs nothing, allows
// state.MaxQubits qubits and runs GOMAXPROCS batch workers.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		log:       zerolog.Nop(),
		maxQubits: state.MaxQubits,
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSimulator = New()

// Simulate runs c on a default Simulator.
func Simulate(c *circuit.Circuit) (*Result, error) {
	return defaultSimulator.Simulate(c)
}

// Simulate applies every column of c to |0...0> and returns the final distribution.
func (s *Simulator) Simulate(c *circuit.Circuit) (*Result, error) {
	return s.run(c, c.Width()-1)
}

// SimulateUpTo applies columns 0 through step only.
func (s *Simulator) SimulateUpTo(c *circuit.Circuit, step int) (*Result, error) {
	if step < 0 {
		return nil, qerr.New(qerr.InvalidStep, "time step must be non-negative").At(-1, step)
	}
	return s.run(c, step)
}

// SimulateColumns applies the first count columns. A count of zero returns
// the initial |0...0> state.
func (s *Simulator) SimulateColumns(c *circuit.Circuit, count int) (*Result, error) {
	if count < 0 {
		return nil, qerr.New(qerr.InvalidStep, "column count must be non-negative, got %d", count)
	}
	return s.run(c, count-1)
}

func (s *Simulator) run(c *circuit.Circuit, last int) (*Result, error) {
	n := c.NumQubits()
	if n == 0 {
		return nil, qerr.New(qerr.EmptyCircuit, "circuit has no qubits")
	}
	if n > s.maxQubits {
		return nil, qerr.New(qerr.InvalidDimension, "circuit has %d qubits, limit is %d", n, s.maxQubits)
	}

	v, err := state.New(n)
	if err != nil {
		return nil, err
	}

	runID := newRunID()
	columns := min(last+1, c.Width())
	log := s.log.With().Str("run_id", runID).Int("qubits", n).Int("columns", columns).Logger()
	start := time.Now()
	log.Debug().Msg("simulation started")

	for t := range columns {
		col := c.Column(t)
		for _, p := range col {
			if err := gate.Apply(v, p.Op); err != nil {
				err = qerr.Locate(err, p.Qubit, t)
				log.Debug().Err(err).Int("step", t).Msg("simulation rejected")
				return nil, err
			}
		}
		if len(col) > 0 {
			log.Trace().Int("step", t).Int("gates", len(col)).Msg("column applied")
		}
	}

	if !v.Normalized() {
		log.Warn().Float64("total", v.TotalProbability()).Msg("probability mass drifted beyond tolerance")
	}

	res := newResult(runID, v, columns)
	log.Debug().Dur("elapsed", time.Since(start)).Str("most_likely", res.MostLikely().Label).Msg("simulation finished")
	return res, nil
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
