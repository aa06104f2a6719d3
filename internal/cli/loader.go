package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"qsim/internal/circuit"
)

// isQASM reports whether path should be parsed as OpenQASM.
func isQASM(path string, force bool) bool {
	return force || strings.EqualFold(filepath.Ext(path), ".qasm")
}

// loadCircuit reads a circuit file. Unreadable files map to
// ExitCommandError, rejected circuits to ExitFailure.
func loadCircuit(path string, forceQASM bool) (*circuit.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "read "+path, err)
	}

	var c *circuit.Circuit
	if isQASM(path, forceQASM) {
		c, err = circuit.ParseQASM(string(data))
	} else {
		c, err = circuit.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, WrapExitError(ExitFailure, "load "+path, err)
	}
	return c, nil
}
