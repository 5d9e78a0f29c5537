// Package apperr contains the error taxonomy shared by the repositories,
// services and HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// A Code classifies an error. The values are the codes returned to API
// clients in the error envelope.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL_SERVER_ERROR"
)

// An Op describes the operation being performed when the error happened.
type Op string

// Details is structured extra information attached to an error, such as
// the list of ingredient ids that could not be found.
type Details map[string]any

// Error is an error classified with a Code.
type Error struct {
	Op      Op
	Code    Code
	Message string
	Details Details
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return string(e.Code)
	}
	return "unknown error"
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E constructs an *Error from its arguments:
//
//	Op      - the operation being performed
//	Code    - the classification
//	Details - structured details
//	error   - the underlying cause
//	string  - a human readable message
//
// When no Code is given the code of the wrapped error, if any, is kept.
// E panics when called with no arguments.
func E(args ...any) error {
	if len(args) == 0 {
		panic("call to apperr.E with no arguments")
	}
	var e Error
	for _, arg := range args {
		switch v := arg.(type) {
		case Op:
			e.Op = v
		case Code:
			e.Code = v
		case Details:
			e.Details = v
		case error:
			e.Err = v
		case string:
			e.Message = v
		default:
			return fmt.Errorf("unknown type (%T) passed to apperr.E", arg)
		}
	}
	if e.Code == "" && e.Err != nil {
		e.Code = ErrorCode(e.Err)
		if e.Message == "" {
			var inner *Error
			if errors.As(e.Err, &inner) {
				e.Message = inner.Message
			}
		}
	}
	if e.Details == nil && e.Err != nil {
		e.Details = ErrorDetails(e.Err)
	}
	return &e
}

// ErrorCode returns the code of the first *Error in err's chain, or the
// empty code when there is none.
func ErrorCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ErrorDetails returns the details of the first *Error in err's chain
// that carries any.
func ErrorDetails(err error) Details {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return nil
		}
		if e.Details != nil {
			return e.Details
		}
		err = e.Err
	}
	return nil
}

// Is reports whether err is classified with code.
func Is(err error, code Code) bool {
	return ErrorCode(err) == code
}

// HTTPStatus maps a code to the HTTP status used for it.
func HTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
