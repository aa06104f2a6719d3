package gate

import (
	"strings"

	"qsim/internal/qerr"
)

// Kind tags a supported gate.
type Kind int

const (
	Invalid Kind = iota
	H
	X
	Z
	T
	S
	RZ
	RX
	RY
	CNOT
)

var kindNames = [...]string{
	Invalid: "INVALID",
	H:       "H",
	X:       "X",
	Z:       "Z",
	T:       "T",
	S:       "S",
	RZ:      "RZ",
	RX:      "RX",
	RY:      "RY",
	CNOT:    "CNOT",
}

// aliases accepted by ParseKind in addition to the canonical names.
var kindAliases = map[string]Kind{
	"CX": CNOT,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "INVALID"
	}
	return kindNames[k]
}

// Valid reports whether k names a supported gate.
func (k Kind) Valid() bool {
	return k > Invalid && k <= CNOT
}

// Arity returns the number of qubits the gate acts on.
func (k Kind) Arity() int {
	if k == CNOT {
		return 2
	}
	return 1
}

// Parameterized reports whether the gate requires a rotation angle.
func (k Kind) Parameterized() bool {
	switch k {
	case RZ, RX, RY:
		return true
	}
	return false
}

// Kinds returns the supported gates in palette order.
func Kinds() []Kind {
	return []Kind{H, X, Z, T, S, RZ, RX, RY, CNOT}
}

// ParseKind resolves a gate name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if k, ok := kindAliases[upper]; ok {
		return k, nil
	}
	for _, k := range Kinds() {
		if kindNames[k] == upper {
			return k, nil
		}
	}
	return Invalid, qerr.New(qerr.UnsupportedGate, "unknown gate kind %q", name).WithGate(name)
}
