package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the circuit editor bindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	H        key.Binding
	X        key.Binding
	Z        key.Binding
	S        key.Binding
	T        key.Binding
	Rotation key.Binding
	CNOT     key.Binding
	Delete   key.Binding
	AddQubit key.Binding
	DelQubit key.Binding
	StepBack key.Binding
	StepFwd  key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "qubit up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "qubit down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "step left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "step right")),
		H:        key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hadamard")),
		X:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "pauli-x")),
		Z:        key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "pauli-z")),
		S:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "phase")),
		T:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "π/8")),
		Rotation: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotation")),
		CNOT:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cnot")),
		Delete:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("bksp", "delete gate")),
		AddQubit: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add qubit")),
		DelQubit: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "drop qubit")),
		StepBack: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "evolve less")),
		StepFwd:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "evolve more")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "save qasm")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.H, k.X, k.Rotation, k.CNOT, k.Delete, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.H, k.X, k.Z, k.S, k.T},
		{k.Rotation, k.CNOT, k.Delete},
		{k.AddQubit, k.DelQubit, k.StepBack, k.StepFwd},
		{k.Save, k.Help, k.Quit},
	}
}
