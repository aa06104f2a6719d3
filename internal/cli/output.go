package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"qsim/internal/qerr"
)

// Process exit statuses.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the circuit was rejected
	ExitCommandError = 2 // bad flags or unreadable input
)

// ExitError carries the status main should exit with alongside the cause.
type ExitError struct {
	Code    int
	Message string
	Err     error // may be nil
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError fails with code and a plain message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches code and context to err, keeping err reachable
// through errors.Is and errors.As.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode picks the status for err: the code of the first ExitError in
// its chain, ExitSuccess for nil, ExitFailure for anything else.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes either human text or an encoded envelope.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the envelope for json and msgpack output.
type CLIResponse struct {
	Status string    `json:"status" msgpack:"status"`
	Data   any       `json:"data,omitempty" msgpack:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty" msgpack:"error,omitempty"`
}

// CLIError is the error half of a failed envelope.
type CLIError struct {
	Code    string `json:"code" msgpack:"code"`
	Message string `json:"message" msgpack:"message"`
}

// Structured reports whether output goes through the envelope.
func (f *OutputFormatter) Structured() bool {
	return f.Format == "json" || f.Format == "msgpack"
}

// Success writes data in the configured format. Text output prints data
// with fmt.
func (f *OutputFormatter) Success(data any) error {
	if f.Structured() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Fail reports err in the configured format and returns it as an ExitError.
func (f *OutputFormatter) Fail(code int, message string, err error) error {
	if f.Structured() {
		if encErr := f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: errorCode(err), Message: fmt.Sprintf("%s: %v", message, err)},
		}); encErr != nil {
			return encErr
		}
	}
	return WrapExitError(code, message, err)
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	if f.Format == "msgpack" {
		return msgpack.NewEncoder(f.Writer).Encode(resp)
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func errorCode(err error) string {
	if code := qerr.CodeOf(err); code != "" {
		return string(code)
	}
	return "COMMAND_ERROR"
}
