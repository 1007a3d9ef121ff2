package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a domain failure independent of transport.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindReference
	KindNotFound
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindReference:
		return "reference"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// AppError is the error type returned by the service layer.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError of the same kind and code, so sentinel
// values like ErrProductNotFound work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Validation reports missing or malformed input. fields names the offending
// inputs and is echoed back to the client.
func Validation(code, message string, fields ...string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

// MissingFields builds the validation error listing every missing field.
func MissingFields(code string, fields []string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    code,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

func Duplicate(code, message string) *AppError {
	return &AppError{Kind: KindDuplicate, Code: code, Message: message}
}

func Reference(code, message string) *AppError {
	return &AppError{Kind: KindReference, Code: code, Message: message}
}

func NotFound(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

// Upstream wraps a media host or store failure.
func Upstream(code, message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Code: code, Message: message, Err: err}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: InternalServerError, Message: message, Err: err}
}

// KindOf returns the kind of the first *AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch KindOf(err) {
	case KindValidation, KindDuplicate, KindReference:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
