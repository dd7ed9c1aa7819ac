package schema

import "fmt"

var emptyMap = map[string]interface{}{}

var (
	ErrInternal = &Error{
		Type:    "generic.internal",
		Message: "An internal error occurred.",
		Details: emptyMap,
	}
	ErrNotFound = &Error{
		Type:    "generic.notFound",
		Message: "Resource not found.",
		Details: emptyMap,
	}
	ErrMethodNotAllowed = &Error{
		Type:    "generic.methodNotAllowed",
		Message: "Method not allowed.",
		Details: emptyMap,
	}
	ErrTooManyRequests = &Error{
		Type:    "access.tooManyRequests",
		Message: "Too many requests. Please slow down.",
		Details: emptyMap,
	}
)

// ErrorResponse represents the response structure sent by the dashboard API whenever errors occurred
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []*Error `json:"errors"`
}

// Error represents a single error present in the ErrorResponse
type Error struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

// ErrInvalidValue wraps a domain validation error of a single request parameter
func ErrInvalidValue(name string, err error) *Error {
	return &Error{
		Type:    "validation.parameter.invalidValue",
		Message: fmt.Sprintf("The parameter '%s' has an invalid value: %s.", name, err.Error()),
		Details: map[string]interface{}{
			"parameter": name,
		},
	}
}
