package provider

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode classifies the errors returned by this package
type ErrorCode string

const (
	ErrCodeInvalidType   ErrorCode = "E_INVALID_TYPE"
	ErrCodeValidation    ErrorCode = "E_VALIDATION"
	ErrCodeProviderIssue ErrorCode = "E_PROVIDER_ISSUE"
)

// CodedError is implemented by every error type of this package
type CodedError interface {
	error
	Code() ErrorCode
}

// Locator is implemented by errors that know where they were raised
type Locator interface {
	Location() (file string, line int)
}

// ProviderError wraps anything the provider library returned or panicked with
type ProviderError struct {
	File  string
	Line  int
	cause error
}

// LocationOf returns the location reported by the first Locator in err's chain.
// A Locator without a file does not count.
func LocationOf(err error) (string, int, bool) {
	var l Locator
	if !errors.As(err, &l) {
		return "", 0, false
	}
	file, line := l.Location()
	if file == "" {
		return "", 0, false
	}
	return file, line, true
}

// NewProviderError wraps cause. The location is taken from cause when it
// reports one, otherwise from the caller of NewProviderError.
func NewProviderError(cause error) *ProviderError {
	if file, line, ok := LocationOf(cause); ok {
		return NewProviderErrorAt(cause, file, line)
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
	}
	return NewProviderErrorAt(cause, file, line)
}

// NewProviderErrorAt wraps cause with an explicit location
func NewProviderErrorAt(cause error, file string, line int) *ProviderError {
	return &ProviderError{File: file, Line: line, cause: cause}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("Provider thrown exception in %s:%d", e.File, e.Line)
}

func (e *ProviderError) Code() ErrorCode { return ErrCodeProviderIssue }

func (e *ProviderError) Unwrap() error { return e.cause }

// InvalidTypeError reports a provider field that could not be converted
type InvalidTypeError struct {
	Field    string
	Expected string
	Value    string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("field '%s' must be %s, got '%s'", e.Field, e.Expected, e.Value)
}

func (e *InvalidTypeError) Code() ErrorCode { return ErrCodeInvalidType }

// ValidationError describes one failed rule
type ValidationError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (e ValidationError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed on '%s=%s'", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("%s failed on '%s'", e.Field, e.Rule)
}

// ValidationErrors is returned when a request is rejected before reaching the provider
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e ValidationErrors) Code() ErrorCode { return ErrCodeValidation }

// ErrorCodeOf returns the code of the first CodedError in err's chain
func ErrorCodeOf(err error) (ErrorCode, bool) {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Code(), true
	}
	return "", false
}

// fromValidator converts validator/v10 errors into ValidationErrors
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
