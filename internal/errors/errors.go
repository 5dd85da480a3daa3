package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
)

// Error types for the alt system
type ErrorType string

const (
	// Core errors
	ErrorTypeContract ErrorType = "contract"
	ErrorTypeMatch    ErrorType = "match"

	// Candidate source errors
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypePermission   ErrorType = "permission"
	ErrorTypeSource       ErrorType = "source"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// ContractError reports an input the core refuses to compute on, such as an
// empty candidate passed to a judge. It is never retryable.
type ContractError struct {
	Type       ErrorType
	Operation  string
	Reason     string
	Underlying error
	Timestamp  time.Time
}

// NewContractError creates a new contract violation error
func NewContractError(op, reason string, err error) *ContractError {
	return &ContractError{
		Type:       ErrorTypeContract,
		Operation:  op,
		Reason:     reason,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ContractError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("contract violation in %s: %s: %v", e.Operation, e.Reason, e.Underlying)
	}
	return fmt.Sprintf("contract violation in %s: %s", e.Operation, e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ContractError) Unwrap() error {
	return e.Underlying
}

// MatchError represents a failure while scoring a candidate set
type MatchError struct {
	Type       ErrorType
	Query      string
	Candidate  string
	Underlying error
	Timestamp  time.Time
}

// NewMatchError creates a new match error
func NewMatchError(query, candidate string, err error) *MatchError {
	return &MatchError{
		Type:       ErrorTypeMatch,
		Query:      query,
		Candidate:  candidate,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *MatchError) Error() string {
	return fmt.Sprintf("scoring %q against %q failed: %v", e.Candidate, e.Query, e.Underlying)
}

// Unwrap returns the underlying error
func (e *MatchError) Unwrap() error {
	return e.Underlying
}

// SourceError represents a failure producing the candidate set
type SourceError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewSourceError creates a new source error, classifying missing files and
// permission failures by their underlying cause.
func NewSourceError(op, path string, err error) *SourceError {
	errorType := ErrorTypeSource
	switch {
	case errors.Is(err, fs.ErrNotExist):
		errorType = ErrorTypeFileNotFound
	case errors.Is(err, fs.ErrPermission):
		errorType = ErrorTypePermission
	}

	return &SourceError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SourceError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// ErrOrNil returns nil when no errors were collected, which keeps callers from
// returning a non-nil interface holding an empty MultiError.
func (e *MultiError) ErrOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}
