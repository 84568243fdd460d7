package tracker

import (
	"errors"
	"fmt"
)

// ErrorCode classifies why an operation was rejected.
type ErrorCode string

const (
	CodeNotFound  ErrorCode = "NOT_FOUND"
	CodeNoSession ErrorCode = "NO_SESSION"
	CodeInvalid   ErrorCode = "INVALID"
	CodeConflict  ErrorCode = "CONFLICT"
	CodeForbidden ErrorCode = "FORBIDDEN"
)

// Error is a rejected tracker operation. Rejections never mutate state.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrNoSession         = newError(CodeNoSession, "no user is logged in")
	ErrUserNotFound      = newError(CodeNotFound, "user not found")
	ErrTaskNotFound      = newError(CodeNotFound, "task not found")
	ErrTaskNotOwned      = newError(CodeForbidden, "task belongs to another user")
	ErrInvalidTransition = newError(CodeConflict, "invalid task transition")
	ErrActiveTaskExists  = newError(CodeConflict, "another task is already active")
	ErrInvalidInput      = newError(CodeInvalid, "invalid input")
)

// invalidf builds an input error that wraps ErrInvalidInput.
func invalidf(format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalid,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrInvalidInput,
	}
}

// transitionf builds a transition error that wraps ErrInvalidTransition.
func transitionf(format string, args ...any) *Error {
	return &Error{
		Code:    CodeConflict,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrInvalidTransition,
	}
}

// IsCode reports whether err is a tracker error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr.Code == code
	}
	return false
}
