package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// Forbidden returns a 403 error with a message indicating the action is
// forbidden.
func Forbidden(action string) error {
	return &Error{
		http.StatusForbidden,
		action + " is not allowed.",
		"forbidden",
	}
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

// MalformedCursor returns a 400 error for a continuation token that could
// not be decoded. Tampered or stale cursors are a client problem, not a
// server fault.
func MalformedCursor() error {
	return &Error{
		http.StatusBadRequest,
		"Search cursor is malformed.",
		"malformed_cursor",
	}
}

// UpstreamFailed returns a 502 error carrying the upstream status so callers
// can tell a Drive outage apart from a bug in this service.
func UpstreamFailed(status int) error {
	return &Error{
		http.StatusBadGateway,
		fmt.Sprintf("Drive request failed with status %d.", status),
		"upstream_failed",
	}
}

// ZipTooLarge returns a 413 error for a folder that exceeds the zip
// assembly ceilings.
func ZipTooLarge(reason string) error {
	return &Error{
		http.StatusRequestEntityTooLarge,
		"Folder is too large to zip: " + reason + ".",
		"zip_too_large",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Unknown Parameter %q", param),
		"unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_error",
	}
}
