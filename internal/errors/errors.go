package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError carries per-field messages and renders as
// 422 {message, errors: {field: [msg, ...]}}.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation builds a ValidationError from field/message pairs.
func NewValidation(fields map[string][]string) *ValidationError {
	return &ValidationError{Message: "The given data was invalid.", Fields: fields}
}

func NewFieldValidation(field, msg string) *ValidationError {
	return NewValidation(map[string][]string{field: {msg}})
}

func Unauthenticated() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: "Unauthenticated.", StatusCode: http.StatusUnauthorized}
}

func Forbidden() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: "This action is unauthorized.", StatusCode: http.StatusForbidden}
}

func NotFound(what string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: what + " not found", StatusCode: http.StatusNotFound}
}

func IsNotFound(err error) bool {
	e, ok := err.(*ErrorWithStatusCode)
	return ok && e.StatusCode == http.StatusNotFound
}
