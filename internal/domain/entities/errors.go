package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrNotFound           = errors.New("not found")
	ErrOrderNotFound      = fmt.Errorf("order %w", ErrNotFound)
	ErrInvalidOrderState  = errors.New("invalid order state")
	ErrOrderAlreadyPaid   = fmt.Errorf("order already paid: %w", ErrInvalidOrderState)
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrConcurrentUpdate   = errors.New("order modified concurrently")
	ErrGateway            = errors.New("payment gateway error")
	ErrAuthentication     = errors.New("authentication failed")
	ErrInvalidSignature   = fmt.Errorf("invalid webhook signature: %w", ErrAuthentication)
	ErrMissingCredentials = fmt.Errorf("missing credentials: %w", ErrAuthentication)
)

// ValidationError carries one message per offending field so the checkout form can show them inline.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = message
}

func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// OrNil lets callers write `return v.OrNil()` after collecting field errors.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransitionError reports a status change the order state machine does not allow.
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrIllegalTransition }

// GatewayError wraps an upstream payment provider failure. It is always retryable by the caller.
type GatewayError struct {
	Gateway    string
	Op         string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Gateway, e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Timeout {
		msg += " (timeout)"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error { return e.Err }

func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

func (e *GatewayError) Retryable() bool { return true }
