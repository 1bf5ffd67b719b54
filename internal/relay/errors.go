package relay

// errors.go defines the structured errors returned by the relay package

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RelayError represents a structured error from the relay package.
type RelayError struct {
	// code identifies the failure class and decides the HTTP status
	code ErrorCode

	// message is a human-readable error message (server-side only)
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *RelayError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *RelayError) Code() ErrorCode { return e.code }
func (e *RelayError) Unwrap() error   { return e.wrapped }

// Is reports whether target is a RelayError with the same code, so callers
// can use errors.Is(err, relay.ErrInvalidAccess).
func (e *RelayError) Is(target error) bool {
	t, ok := target.(*RelayError)
	if !ok {
		return false
	}
	return t.code == e.code
}

type ErrorCode string

const (
	// ErrCodeMissingFields is used when bill_no, bill_name or bill_kana is absent or blank
	ErrCodeMissingFields ErrorCode = "missing_fields"

	// ErrCodeInvalidAccess is used when a request carries data through a source the mode does not accept
	// (e.g. query parameters in hardened mode, or query and body at the same time)
	ErrCodeInvalidAccess ErrorCode = "invalid_access"

	// ErrCodeMalformedRequest is used when the request body cannot be parsed
	ErrCodeMalformedRequest ErrorCode = "malformed_request"

	// ErrCodeTemplateRead is used when the page template cannot be read
	ErrCodeTemplateRead ErrorCode = "template_read"

	// ErrCodeRender is used when the template does not contain the form placeholder
	ErrCodeRender ErrorCode = "render"

	// ErrCodeUnencodable is used when a value cannot be represented in the gateway charset
	ErrCodeUnencodable ErrorCode = "unencodable"

	// ErrCodeConfiguration is used when a required secret or setting is missing at startup
	ErrCodeConfiguration ErrorCode = "configuration"
)

// sentinel values for errors.Is comparisons
var (
	ErrMissingFields       = &RelayError{code: ErrCodeMissingFields, message: "missing required fields"}
	ErrInvalidAccess       = &RelayError{code: ErrCodeInvalidAccess, message: "invalid access"}
	ErrMalformedRequest    = &RelayError{code: ErrCodeMalformedRequest, message: "malformed request"}
	ErrTemplateRead        = &RelayError{code: ErrCodeTemplateRead, message: "template read failed"}
	ErrPlaceholderNotFound = &RelayError{code: ErrCodeRender, message: "form placeholder not found"}
	ErrUnencodable         = &RelayError{code: ErrCodeUnencodable, message: "value not representable in gateway charset"}
	ErrConfiguration       = &RelayError{code: ErrCodeConfiguration, message: "invalid configuration"}
)

// MissingFieldsError lists the required fields that were absent or blank.
// Fields holds wire names (bill_no, bill_name, bill_kana) in protocol order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingFields }

// NewInvalidAccessError creates an error for requests using a data source the mode rejects.
//
// The returned error will have code ErrCodeInvalidAccess.
func NewInvalidAccessError(msg string) error {
	return &RelayError{code: ErrCodeInvalidAccess, message: msg}
}

// WrapMalformedRequestError wraps a body parsing failure.
//
// The returned error will have code ErrCodeMalformedRequest.
func WrapMalformedRequestError(err error, msg string) error {
	return &RelayError{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

// WrapTemplateReadError wraps a failure to read the page template.
//
// The returned error will have code ErrCodeTemplateRead.
func WrapTemplateReadError(err error, msg string) error {
	return &RelayError{code: ErrCodeTemplateRead, message: msg, wrapped: err}
}

// NewRenderError creates an error for templates that cannot be rendered.
//
// The returned error will have code ErrCodeRender.
func NewRenderError(msg string) error {
	return &RelayError{code: ErrCodeRender, message: msg}
}

// WrapUnencodableError wraps a charset conversion failure.
//
// The returned error will have code ErrCodeUnencodable.
func WrapUnencodableError(err error, msg string) error {
	return &RelayError{code: ErrCodeUnencodable, message: msg, wrapped: err}
}

// NewConfigurationError creates an error for missing or invalid startup configuration.
//
// The returned error will have code ErrCodeConfiguration.
func NewConfigurationError(msg string) error {
	return &RelayError{code: ErrCodeConfiguration, message: msg}
}

// StatusCode maps an error returned by this package to the HTTP status the
// server responds with. Unknown errors are treated as internal errors.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidAccess),
		errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WrapConfigurationError wraps an error raised while loading startup configuration.
//
// The returned error will have code ErrCodeConfiguration.
func WrapConfigurationError(err error, msg string) error {
	return &RelayError{code: ErrCodeConfiguration, message: msg, wrapped: err}
}
