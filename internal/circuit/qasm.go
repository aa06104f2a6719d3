package circuit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"qsim/internal/gate"
	"qsim/internal/qerr"
)

// Pre-compiled regexps for the OPENQASM 2.0 subset the engine understands.
var (
	qregRegex       = regexp.MustCompile(`^qreg\s+q\[(\d+)\]\s*;?$`)
	singleGateRegex = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*;?$`)
	paramGateRegex  = regexp.MustCompile(`^(\w+)\s*\(\s*(` + anglePattern + `)\s*\)\s+q\[(\d+)\]\s*;?$`)
	twoQubitRegex   = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\]\s*;?$`)
)

// ToQASM renders the circuit as OPENQASM 2.0, column by column.
func (c *Circuit) ToQASM() string {
	n := c.NumQubits()

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", n)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", n)

	for _, p := range c.Placements() {
		op := p.Op
		name := qasmName(op.Kind)
		switch {
		case op.Kind.Arity() == 2:
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", name, op.Control, op.Target)
		case op.Kind.Parameterized():
			fmt.Fprintf(&sb, "%s(%s) q[%d];\n", name, FormatAngle(op.Theta()), op.Target)
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", name, op.Target)
		}
	}

	return sb.String()
}

func qasmName(k gate.Kind) string {
	if k == gate.CNOT {
		return "cx"
	}
	return strings.ToLower(k.String())
}

// ParseQASM builds a circuit from OPENQASM 2.0 source.
//
// Each gate is scheduled in the earliest column after the last column used by
// any of its qubits, so independent gates share a column. A barrier starts a
// new column for everything that follows. Two-qubit gates are anchored on
// their control qubit. Measurements are skipped: the simulator reports the
// full distribution.
func ParseQASM(src string) (*Circuit, error) {
	var c *Circuit
	var frontier []int
	floor := 0

	lines := strings.Split(src, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "OPENQASM"), strings.HasPrefix(line, "include"), strings.HasPrefix(line, "creg"):
			continue
		case strings.HasPrefix(line, "qreg"):
			if c != nil {
				return nil, parseErr(lineNo, "only one quantum register is supported")
			}
			m := qregRegex.FindStringSubmatch(line)
			if m == nil {
				return nil, parseErr(lineNo, "malformed qreg declaration %q", line)
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, qerr.New(qerr.InvalidDimension, "register size %s is too large", m[1]))
			}
			if err := checkWidth(n); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			c = New(n)
			frontier = make([]int, n)
			continue
		case strings.HasPrefix(line, "measure"):
			continue
		}

		if c == nil {
			return nil, parseErr(lineNo, "gate before qreg declaration")
		}

		if strings.HasPrefix(line, "barrier") {
			for _, f := range frontier {
				floor = max(floor, f)
			}
			continue
		}

		anchor, op, err := parseGateLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		step := floor
		for _, q := range op.Qubits() {
			if q >= 0 && q < len(frontier) {
				step = max(step, frontier[q])
			}
		}
		if err := c.SetGate(anchor, step, op); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, q := range op.Qubits() {
			frontier[q] = step + 1
		}
	}

	if c == nil {
		return nil, qerr.New(qerr.ParseError, "no qreg declaration found")
	}
	return c, nil
}

// parseGateLine decodes one gate statement into its anchor qubit and op.
func parseGateLine(line string, lineNo int) (int, gate.Op, error) {
	if m := paramGateRegex.FindStringSubmatch(line); m != nil {
		k, err := kindAt(m[1], lineNo)
		if err != nil {
			return 0, gate.Op{}, err
		}
		theta, err := ParseAngle(m[2])
		if err != nil {
			return 0, gate.Op{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		q, _ := strconv.Atoi(m[3])
		return q, gate.Rotation(k, q, theta), nil
	}

	if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
		k, err := kindAt(m[1], lineNo)
		if err != nil {
			return 0, gate.Op{}, err
		}
		if k.Arity() != 2 {
			return 0, gate.Op{}, parseErr(lineNo, "%s takes one qubit", k)
		}
		control, _ := strconv.Atoi(m[2])
		target, _ := strconv.Atoi(m[3])
		return control, gate.Controlled(control, target), nil
	}

	if m := singleGateRegex.FindStringSubmatch(line); m != nil {
		k, err := kindAt(m[1], lineNo)
		if err != nil {
			return 0, gate.Op{}, err
		}
		q, _ := strconv.Atoi(m[2])
		if k.Arity() == 2 {
			return 0, gate.Op{}, parseErr(lineNo, "%s needs a control and a target", k)
		}
		// Rotations without an angle are rejected when placed.
		return q, gate.New(k, q), nil
	}

	name, _, _ := strings.Cut(line, " ")
	if _, err := gate.ParseKind(name); err != nil {
		return 0, gate.Op{}, fmt.Errorf("line %d: %w", lineNo, err)
	}
	return 0, gate.Op{}, parseErr(lineNo, "malformed statement %q", line)
}

func kindAt(name string, lineNo int) (gate.Kind, error) {
	k, err := gate.ParseKind(name)
	if err != nil {
		return gate.Invalid, fmt.Errorf("line %d: %w", lineNo, err)
	}
	return k, nil
}

func parseErr(lineNo int, format string, args ...any) error {
	return qerr.New(qerr.ParseError, "line %d: %s", lineNo, fmt.Sprintf(format, args...))
}
