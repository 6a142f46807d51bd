// Package errors classifies the failures a report run can hit.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies an error for exit-code mapping and tests.
type Code string

const (
	// CodeNetwork indicates the remote service was unreachable or answered
	// with a non-success status.
	CodeNetwork Code = "NETWORK_ERROR"

	// CodeParse indicates a response payload did not have the expected shape.
	CodeParse Code = "PARSE_ERROR"

	// CodeInput indicates the caller supplied unusable input.
	CodeInput Code = "INPUT_ERROR"
)

// Error is a typed error carrying the failing operation and its cause.
// It can be unwrapped with errors.As / errors.Unwrap.
type Error struct {
	Code Code
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Op)
}

// Unwrap implements errors.Unwrap for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// Network wraps a connectivity or HTTP status failure.
func Network(op string, cause error) *Error {
	return &Error{Code: CodeNetwork, Op: op, Err: cause}
}

// Parse wraps a malformed-payload failure.
func Parse(op string, cause error) *Error {
	return &Error{Code: CodeParse, Op: op, Err: cause}
}

// Input reports invalid caller input.
func Input(op, msg string) *Error {
	return &Error{Code: CodeInput, Op: op, Err: stderrors.New(msg)}
}

// Is reports whether any error in err's chain carries the given code.
func Is(err error, code Code) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}
