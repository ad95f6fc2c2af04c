package jobscan

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EINTERNAL = "internal"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jobscan error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// FetchErrorKind classifies why a page could not be evaluated.
type FetchErrorKind string

// Fetch error kinds.
const (
	// ConnectionFailure covers timeouts, DNS failures, refused connections
	// and any other error before an HTTP response was received.
	ConnectionFailure FetchErrorKind = "connection_failure"

	// HTTPStatus means the server answered with a status other than 200.
	HTTPStatus FetchErrorKind = "http_status"

	// ParseFailure means the markup was empty or could not be turned into text.
	ParseFailure FetchErrorKind = "parse_failure"
)

// FetchError describes a failed fetch or an unreadable page.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int  // set for HTTPStatus
	Timeout    bool // set for ConnectionFailure caused by a deadline
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch e.Kind {
	case HTTPStatus:
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	case ConnectionFailure:
		if e.Timeout {
			return fmt.Sprintf("connection failure (timeout): %v", e.Err)
		}
		return fmt.Sprintf("connection failure: %v", e.Err)
	case ParseFailure:
		return fmt.Sprintf("parse failure: %v", e.Err)
	}
	return fmt.Sprintf("fetch error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchErrorOf returns the FetchError wrapped in err, if any.
func FetchErrorOf(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
