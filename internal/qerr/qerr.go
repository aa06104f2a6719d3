// Package qerr defines the validation errors surfaced by the simulation engine.
//
// Every failure is a deterministic input error. An *Error carries a Code plus
// the coordinates (qubit, step, gate) needed to report it precisely. Codes are
// errors themselves, so callers match with errors.Is:
//
//	if errors.Is(err, qerr.InvalidGateTarget) { ... }
package qerr

import (
	"errors"
	"fmt"
	"strings"
)

// Code categorizes engine errors.
type Code string

const (
	// InvalidDimension indicates a non-positive (or oversized) qubit count.
	InvalidDimension Code = "INVALID_DIMENSION"

	// QubitNotFound indicates a gate placement referencing a missing qubit.
	QubitNotFound Code = "QUBIT_NOT_FOUND"

	// InvalidGateTarget indicates a two-qubit gate with equal or out-of-range qubits.
	InvalidGateTarget Code = "INVALID_GATE_TARGET"

	// InvalidGateParameter indicates a rotation gate without a usable angle.
	InvalidGateParameter Code = "INVALID_GATE_PARAMETER"

	// UnsupportedGate indicates an unknown gate kind.
	UnsupportedGate Code = "UNSUPPORTED_GATE"

	// EmptyCircuit indicates a simulation request with zero qubits.
	EmptyCircuit Code = "EMPTY_CIRCUIT"

	// InvalidStep indicates a negative time step.
	InvalidStep Code = "INVALID_STEP"

	// SlotConflict indicates two operations touching the same qubit in one column.
	SlotConflict Code = "SLOT_CONFLICT"

	// ParseError indicates malformed QASM or circuit document input.
	ParseError Code = "PARSE_ERROR"
)

// Error implements the error interface so a bare Code can be used as a
// target for errors.Is.
func (c Code) Error() string { return string(c) }

// Error is a located engine error.
type Error struct {
	Code    Code
	Message string

	// Qubit is the offending qubit index, or -1.
	Qubit int

	// Step is the offending time step, or -1.
	Step int

	// Gate is the gate kind name involved, if any.
	Gate string
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Code, e.Message)

	var loc []string
	if e.Gate != "" {
		loc = append(loc, "gate="+e.Gate)
	}
	if e.Qubit >= 0 {
		loc = append(loc, fmt.Sprintf("qubit=%d", e.Qubit))
	}
	if e.Step >= 0 {
		loc = append(loc, fmt.Sprintf("step=%d", e.Step))
	}
	if len(loc) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(loc, ", "))
	}
	return sb.String()
}

// Unwrap exposes the Code for errors.Is.
func (e *Error) Unwrap() error { return e.Code }

// New creates an Error without location context.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Qubit:   -1,
		Step:    -1,
	}
}

// At returns a copy of e located at the given qubit and step.
func (e *Error) At(qubit, step int) *Error {
	c := *e
	c.Qubit = qubit
	c.Step = step
	return &c
}

// WithGate returns a copy of e tagged with a gate name.
func (e *Error) WithGate(name string) *Error {
	c := *e
	c.Gate = name
	return &c
}

// Locate fills in missing location fields on err if it is an *Error.
// Fields already set are kept. Other errors are returned unchanged.
func Locate(err error, qubit, step int) error {
	var qe *Error
	if !errors.As(err, &qe) {
		return err
	}
	c := *qe
	if c.Qubit < 0 {
		c.Qubit = qubit
	}
	if c.Step < 0 {
		c.Step = step
	}
	return &c
}

// CodeOf returns the Code carried by err, or "" if err is not an engine error.
func CodeOf(err error) Code {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return ""
}
