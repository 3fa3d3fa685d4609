package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies errors into broad categories used for HTTP
// mapping and logging.
type ErrorType string

const (
	TypeValidation    ErrorType = "VALIDATION"
	TypeNotFound      ErrorType = "NOT_FOUND"
	TypeConflict      ErrorType = "CONFLICT"
	TypeBusiness      ErrorType = "BUSINESS"
	TypeAuthorization ErrorType = "AUTHORIZATION"
	TypeInternal      ErrorType = "INTERNAL"
	TypeExternal      ErrorType = "EXTERNAL"
)

// Code identifies a registered error kind. Codes are created once at
// package init time through a Registry and compared by value.
type Code struct {
	Key        string
	Type       ErrorType
	HTTPStatus int
	Message    string
}

// Registry scopes error codes to a domain prefix (e.g. "APPLICATION").
type Registry struct {
	prefix string
}

// NewRegistry creates a registry for the given domain prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register declares an error code under this registry's prefix
func (r *Registry) Register(code string, t ErrorType, httpStatus int, message string) Code {
	return Code{
		Key:        r.prefix + "_" + code,
		Type:       t,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// New builds a fresh Error for the given code
func (r *Registry) New(c Code) *Error {
	return &Error{
		Code:       c.Key,
		Type:       c.Type,
		HTTPStatus: c.HTTPStatus,
		Message:    c.Message,
	}
}

// Error is the standard error value flowing through services and
// handlers. It carries an HTTP status so the global fiber error handler
// can render it without type switches per domain.
type Error struct {
	Code       string         `json:"code"`
	Type       ErrorType      `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a key/value pair for diagnostics; chainable
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error without changing the code
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// ToHTTPResponse renders the error body returned to clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"code":    e.Code,
		"type":    e.Type,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error of the given type,
// preserving the original in the chain. The original message stays
// inspectable through Unwrap and Error().
func Wrap(err error, message string, t ErrorType) *Error {
	status := http.StatusInternalServerError
	if t == TypeExternal {
		status = http.StatusBadGateway
	}
	return &Error{
		Code:       string(t) + "_ERROR",
		Type:       t,
		HTTPStatus: status,
		Message:    message,
		cause:      err,
	}
}

// IsCode reports whether err is an *Error carrying the given code
func IsCode(err error, c Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == c.Key
	}
	return false
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}
