package qerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesCode(t *testing.T) {
	err := New(InvalidGateTarget, "control equals target").At(1, 3).WithGate("CNOT")

	assert.True(t, errors.Is(err, InvalidGateTarget))
	assert.False(t, errors.Is(err, QubitNotFound))

	wrapped := fmt.Errorf("placing gate: %w", err)
	assert.True(t, errors.Is(wrapped, InvalidGateTarget))
	assert.Equal(t, InvalidGateTarget, CodeOf(wrapped))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "no location",
			err:  New(EmptyCircuit, "circuit has no qubits"),
			want: "EMPTY_CIRCUIT: circuit has no qubits",
		},
		{
			name: "full location",
			err:  New(InvalidGateParameter, "missing angle").At(0, 2).WithGate("RX"),
			want: "INVALID_GATE_PARAMETER: missing angle (gate=RX, qubit=0, step=2)",
		},
		{
			name: "qubit only",
			err:  New(QubitNotFound, "no qubit 4").At(4, -1),
			want: "QUBIT_NOT_FOUND: no qubit 4 (qubit=4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestLocateKeepsExistingFields(t *testing.T) {
	err := New(InvalidGateTarget, "bad").At(2, -1)

	located := Locate(err, 5, 7)

	var qe *Error
	assert.True(t, errors.As(located, &qe))
	assert.Equal(t, 2, qe.Qubit)
	assert.Equal(t, 7, qe.Step)

	// The receiver is left untouched.
	assert.Equal(t, -1, err.Step)
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("boom")))
	assert.Equal(t, SlotConflict, CodeOf(SlotConflict))
}
