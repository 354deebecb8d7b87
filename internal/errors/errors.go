// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidLeg       = errors.New("invalid option leg")
	ErrUnknownStrategy  = errors.New("unknown strategy")
	ErrPositionNotFound = errors.New("position not found")
	ErrEmptyPortfolio   = errors.New("portfolio has no positions")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrFileFormat       = errors.New("unsupported strategy file format")
	ErrInputValidation  = errors.New("input validation failed")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrInputValidation.
func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// StrategyError represents an error building, loading or encoding a strategy.
type StrategyError struct {
	Name string
	Op   string
	Err  error
}

func (e *StrategyError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("strategy error [%s]: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("strategy error [%s] %s: %v", e.Op, e.Name, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewStrategyError creates a new StrategyError.
func NewStrategyError(name, op string, err error) *StrategyError {
	return &StrategyError{
		Name: name,
		Op:   op,
		Err:  err,
	}
}

// LegError represents a leg that could not be parsed from user input.
type LegError struct {
	Input  string
	Reason string
	Err    error
}

func (e *LegError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("leg error %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("leg error %q: %s", e.Input, e.Reason)
}

// Unwrap matches ErrInvalidLeg as well as the underlying parse error.
func (e *LegError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidLeg, e.Err}
	}
	return []error{ErrInvalidLeg}
}

// NewLegError creates a new LegError.
func NewLegError(input, reason string, err error) *LegError {
	return &LegError{
		Input:  input,
		Reason: reason,
		Err:    err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
