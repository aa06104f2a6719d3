// Package tui is the interactive circuit editor. Every edit re-runs the
// simulator and redraws the distribution next to the circuit.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"qsim/internal/circuit"
	"qsim/internal/gate"
	"qsim/internal/sim"
	"qsim/internal/state"
)

// focus represents which mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusAngle
	focusTarget
)

// Options configures a Model.
type Options struct {
	Circuit   *circuit.Circuit // nil starts with four empty qubits
	Simulator *sim.Simulator
	Logger    zerolog.Logger
	SavePath  string
	Precision int
	MaxQubits int
}

// Model represents the TUI application state.
type Model struct {
	circuit   *circuit.Circuit
	sim       *sim.Simulator
	log       zerolog.Logger
	savePath  string
	precision int
	maxQubits int

	cursorQubit int
	cursorStep  int
	width       int
	height      int
	focus       focus
	statusMsg   string

	// Pending gate state
	rotation    gate.Kind
	targetQubit int
	angle       textinput.Model

	// shown is how many columns are applied, or -1 for all of them.
	shown  int
	result *sim.Result
	err    error

	keys keyMap
	help help.Model
	bar  progress.Model
}

// New builds the editor and runs the first simulation.
func New(opts Options) Model {
	c := opts.Circuit
	if c == nil {
		c = circuit.New(4)
	}
	s := opts.Simulator
	if s == nil {
		s = sim.New()
	}
	if opts.SavePath == "" {
		opts.SavePath = "circuit.qasm"
	}
	if opts.Precision <= 0 {
		opts.Precision = 4
	}
	if opts.MaxQubits <= 0 || opts.MaxQubits > state.MaxQubits {
		opts.MaxQubits = state.MaxQubits
	}

	ti := textinput.New()
	ti.Placeholder = "pi/2"
	ti.CharLimit = 32
	ti.Width = 20

	m := Model{
		circuit:     c,
		sim:         s,
		log:         opts.Logger,
		savePath:    opts.SavePath,
		precision:   opts.Precision,
		maxQubits:   opts.MaxQubits,
		rotation:    gate.RX,
		targetQubit: -1,
		angle:       ti,
		shown:       -1,
		keys:        defaultKeys(),
		help:        help.New(),
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage()),
	}
	m.simulate()
	return m
}

// Circuit returns the circuit being edited.
func (m Model) Circuit() *circuit.Circuit { return m.circuit }

func (m *Model) simulate() {
	if m.shown >= m.circuit.Width() {
		m.shown = -1
	}
	if m.shown < 0 {
		m.result, m.err = m.sim.Simulate(m.circuit)
	} else {
		m.result, m.err = m.sim.SimulateColumns(m.circuit, m.shown)
	}
	if m.err != nil {
		m.log.Debug().Err(m.err).Msg("editor simulation failed")
	}
}

// place puts op at the cursor and advances one step on success.
func (m *Model) place(op gate.Op) bool {
	if err := m.circuit.SetGate(m.cursorQubit, m.cursorStep, op); err != nil {
		m.statusMsg = err.Error()
		return false
	}
	m.log.Debug().Str("gate", op.String()).Int("step", m.cursorStep).Msg("gate placed")
	m.cursorStep++
	m.simulate()
	return true
}

func (m *Model) save() {
	if err := os.WriteFile(m.savePath, []byte(m.circuit.ToQASM()), 0o644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + m.savePath
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		m.statusMsg = ""
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusCircuit:
			return m.updateCircuit(msg)
		case focusAngle:
			return m.updateAngle(msg)
		case focusTarget:
			m.updateTarget(msg)
		}
	}
	return m, nil
}

func (m Model) updateCircuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.circuit.NumQubits()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursorQubit > 0 {
			m.cursorQubit--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursorQubit < n-1 {
			m.cursorQubit++
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursorStep > 0 {
			m.cursorStep--
		}
	case key.Matches(msg, m.keys.Right):
		m.cursorStep++
	case key.Matches(msg, m.keys.H):
		m.place(gate.New(gate.H, m.cursorQubit))
	case key.Matches(msg, m.keys.X):
		m.place(gate.New(gate.X, m.cursorQubit))
	case key.Matches(msg, m.keys.Z):
		m.place(gate.New(gate.Z, m.cursorQubit))
	case key.Matches(msg, m.keys.S):
		m.place(gate.New(gate.S, m.cursorQubit))
	case key.Matches(msg, m.keys.T):
		m.place(gate.New(gate.T, m.cursorQubit))
	case key.Matches(msg, m.keys.Rotation):
		m.focus = focusAngle
		m.angle.SetValue("")
		return m, m.angle.Focus()
	case key.Matches(msg, m.keys.CNOT):
		if n < 2 {
			m.statusMsg = "CNOT needs at least two qubits"
			break
		}
		m.focus = focusTarget
		m.targetQubit = m.cursorQubit + 1
		if m.targetQubit >= n {
			m.targetQubit = m.cursorQubit - 1
		}
	case key.Matches(msg, m.keys.Delete):
		m.circuit.ClearAt(m.cursorQubit, m.cursorStep)
		m.simulate()
	case key.Matches(msg, m.keys.AddQubit):
		if n >= m.maxQubits {
			m.statusMsg = fmt.Sprintf("Limit of %d qubits reached", m.maxQubits)
			break
		}
		m.circuit.AddQubit()
		m.simulate()
	case key.Matches(msg, m.keys.DelQubit):
		if n <= 1 {
			break
		}
		if err := m.circuit.RemoveQubit(); err != nil {
			m.statusMsg = err.Error()
			break
		}
		m.cursorQubit = min(m.cursorQubit, n-2)
		m.simulate()
	case key.Matches(msg, m.keys.StepBack):
		w := m.circuit.Width()
		if w == 0 {
			break
		}
		if m.shown < 0 {
			m.shown = w
		}
		if m.shown > 0 {
			m.shown--
		}
		m.simulate()
	case key.Matches(msg, m.keys.StepFwd):
		if m.shown >= 0 {
			m.shown++
		}
		m.simulate()
	case key.Matches(msg, m.keys.Save):
		m.save()
	}
	return m, nil
}

var rotations = []gate.Kind{gate.RX, gate.RY, gate.RZ}

func (m Model) updateAngle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusCircuit
		m.angle.Blur()
		return m, nil
	case "tab":
		for i, k := range rotations {
			if k == m.rotation {
				m.rotation = rotations[(i+1)%len(rotations)]
				break
			}
		}
		return m, nil
	case "enter":
		theta, err := circuit.ParseAngle(m.angle.Value())
		if err != nil {
			m.statusMsg = "Invalid angle, use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
			return m, nil
		}
		if m.place(gate.Rotation(m.rotation, m.cursorQubit, theta)) {
			m.focus = focusCircuit
			m.angle.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.angle, cmd = m.angle.Update(msg)
	return m, cmd
}

func (m *Model) updateTarget(msg tea.KeyMsg) {
	switch {
	case msg.String() == "esc":
		m.focus = focusCircuit
		m.targetQubit = -1
	case key.Matches(msg, m.keys.Up):
		for next := m.targetQubit - 1; next >= 0; next-- {
			if next != m.cursorQubit {
				m.targetQubit = next
				break
			}
		}
	case key.Matches(msg, m.keys.Down):
		for next := m.targetQubit + 1; next < m.circuit.NumQubits(); next++ {
			if next != m.cursorQubit {
				m.targetQubit = next
				break
			}
		}
	case msg.String() == "enter":
		if m.place(gate.Controlled(m.cursorQubit, m.targetQubit)) {
			m.focus = focusCircuit
			m.targetQubit = -1
		}
	}
}
