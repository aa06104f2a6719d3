package circuit

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsim/internal/gate"
	"qsim/internal/qerr"
)

func TestDecodeYAML(t *testing.T) {
	src := `
qubits: 3
gates:
  - {gate: H, qubit: 0, step: 0}
  - {gate: cnot, control: 0, target: 2, step: 1}
  - gate: RY
    qubit: 1
    step: 1
    angle: "3*pi/4"
`
	c, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 3, c.NumQubits())
	assert.Equal(t, 3, c.GateCount())

	p, ok := c.GateAt(2, 1)
	require.True(t, ok)
	assert.Equal(t, gate.Controlled(0, 2), p.Op)

	op, ok := c.Gate(1, 1)
	require.True(t, ok)
	assert.InDelta(t, 3*math.Pi/4, op.Theta(), 1e-12)
}

func TestDecodeJSON(t *testing.T) {
	src := `{"qubits": 1, "gates": [{"gate": "X", "qubit": 0, "step": 2}]}`

	c, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	op, ok := c.Gate(0, 2)
	require.True(t, ok)
	assert.Equal(t, gate.X, op.Kind)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code qerr.Code
	}{
		{"empty", "", qerr.ParseError},
		{"unknown field", "qubits: 1\ncolor: red\n", qerr.ParseError},
		{"negative qubits", "qubits: -1\n", qerr.InvalidDimension},
		{"unknown gate", "qubits: 1\ngates: [{gate: SWAP, qubit: 0, step: 0}]\n", qerr.UnsupportedGate},
		{"cnot without target", "qubits: 2\ngates: [{gate: CNOT, control: 0, step: 0}]\n", qerr.InvalidGateTarget},
		{"cnot same qubit", "qubits: 2\ngates: [{gate: CNOT, control: 1, target: 1, step: 0}]\n", qerr.InvalidGateTarget},
		{"missing qubit", "qubits: 2\ngates: [{gate: H, step: 0}]\n", qerr.QubitNotFound},
		{"qubit out of range", "qubits: 2\ngates: [{gate: H, qubit: 5, step: 0}]\n", qerr.QubitNotFound},
		{"rotation without angle", "qubits: 1\ngates: [{gate: RX, qubit: 0, step: 0}]\n", qerr.InvalidGateParameter},
		{"bad angle", "qubits: 1\ngates: [{gate: RX, qubit: 0, step: 0, angle: half}]\n", qerr.InvalidGateParameter},
		{"negative step", "qubits: 1\ngates: [{gate: X, qubit: 0, step: -1}]\n", qerr.InvalidStep},
		{"too many qubits", "qubits: 20000000\n", qerr.InvalidDimension},
		{"one past the limit", "qubits: 25\n", qerr.InvalidDimension},
		{"cnot control out of range", "qubits: 2\ngates: [{gate: CNOT, control: 5, target: 0, step: 0}]\n", qerr.InvalidGateTarget},
		{"cnot target out of range", "qubits: 2\ngates: [{gate: CNOT, control: 0, target: 7, step: 0}]\n", qerr.InvalidGateTarget},
		{"cnot with qubit", "qubits: 2\ngates: [{gate: CNOT, control: 0, target: 1, qubit: 1, step: 0}]\n", qerr.InvalidGateTarget},
		{"cnot with angle", "qubits: 2\ngates: [{gate: CNOT, control: 0, target: 1, angle: pi, step: 0}]\n", qerr.InvalidGateParameter},
		{"single qubit gate with control", "qubits: 2\ngates: [{gate: H, qubit: 0, control: 1, step: 0}]\n", qerr.InvalidGateTarget},
		{"single qubit gate with target", "qubits: 2\ngates: [{gate: RZ, qubit: 0, target: 1, angle: pi, step: 0}]\n", qerr.InvalidGateTarget},
		{"fixed gate with angle", "qubits: 1\ngates: [{gate: X, qubit: 0, angle: pi/2, step: 0}]\n", qerr.InvalidGateParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := bellWithPhase(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))
	assert.Contains(t, buf.String(), "angle: pi/4")

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Placements(), back.Placements())
}

func TestDecodeAtQubitLimit(t *testing.T) {
	c, err := Decode(strings.NewReader("qubits: 24\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, c.NumQubits())
}
