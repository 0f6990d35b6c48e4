package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// ===== Error model (shared by books / members / borrowings / dashboard) =====

type Code string

const (
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeNotFound         Code = "NOT_FOUND"
	CodeNotAvailable     Code = "NOT_AVAILABLE"
	CodeInactiveMember   Code = "INACTIVE_MEMBER"
	CodeAlreadyReturned  Code = "ALREADY_RETURNED"
	CodeConflict         Code = "CONFLICT" // UNIQUE / FK violations
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	CodeUnexpected       Code = "UNEXPECTED"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func Invalid(msg string) *Error         { return &Error{Code: CodeInvalidInput, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Code: CodeNotFound, Message: msg} }
func NotAvailable(msg string) *Error    { return &Error{Code: CodeNotAvailable, Message: msg} }
func InactiveMember(msg string) *Error  { return &Error{Code: CodeInactiveMember, Message: msg} }
func AlreadyReturned(msg string) *Error { return &Error{Code: CodeAlreadyReturned, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Code: CodeConflict, Message: msg} }
func Unexpected(msg string) *Error      { return &Error{Code: CodeUnexpected, Message: msg} }

// CodeOf returns the domain code carried by err, CodeUnexpected for anything else.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnexpected
}

func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidInput, CodeNotAvailable, CodeInactiveMember:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyReturned, CodeConflict:
		return http.StatusConflict
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
