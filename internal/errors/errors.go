package errors

import "fmt"

// ErrorCode represents an optom error code.
type ErrorCode string

const (
	ErrParse           ErrorCode = "PARSE_ERROR"      // malformed shorthand
	ErrValidation      ErrorCode = "VALIDATION_ERROR" // field invariant broken
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT" // flag outside its domain
	ErrArithmetic      ErrorCode = "ARITHMETIC_ERROR" // undefined derived value
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // malformed tool/CLI request
	ErrInternal        ErrorCode = "INTERNAL"
)

// OptomError represents a structured error with code, offending value and details.
type OptomError struct {
	Code    ErrorCode
	Value   any
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *OptomError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewParse creates an error for shorthand notation that cannot be parsed.
func NewParse(value any, msg string) *OptomError {
	return &OptomError{
		Code:    ErrParse,
		Value:   value,
		Message: msg,
	}
}

// NewValidation creates an error for a value that breaks a field invariant.
func NewValidation(value any, msg string) *OptomError {
	return &OptomError{
		Code:    ErrValidation,
		Value:   value,
		Message: msg,
	}
}

// NewInvalidArgument creates an error for an operation flag outside its domain.
func NewInvalidArgument(value any, msg string) *OptomError {
	return &OptomError{
		Code:    ErrInvalidArgument,
		Value:   value,
		Message: msg,
	}
}

// NewArithmetic creates an error for a derived value that is undefined.
func NewArithmetic(value any, msg string) *OptomError {
	return &OptomError{
		Code:    ErrArithmetic,
		Value:   value,
		Message: msg,
	}
}

// NewInvalidRequest creates an error for invalid request parameters.
func NewInvalidRequest(msg string) *OptomError {
	return &OptomError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *OptomError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &OptomError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// WithDetail returns e with key set in its details map.
func (e *OptomError) WithDetail(key string, value any) *OptomError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Is checks if an error is an OptomError with the given code.
func Is(err error, code ErrorCode) bool {
	if oErr, ok := err.(*OptomError); ok {
		return oErr.Code == code
	}
	return false
}
