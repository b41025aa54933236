package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound covers unknown order ids and unknown tracking tokens. The
	// public tracking path must not distinguish the two.
	ErrNotFound = errors.New("not found")

	// ErrConflict surfaces a lost optimistic-locking race. Callers may retry.
	ErrConflict = errors.New("concurrent update conflict")
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated field, not just the first.
type ValidationError struct {
	Violations []FieldViolation `json:"violations"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

type SchedulingConflictError struct {
	Date time.Time
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf("fulfillment slot %s is unavailable", e.Date.Format(time.RFC3339))
}

// DependencyError wraps a failure of an external collaborator (store,
// scheduler). Never swallowed by the service layer.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s failed: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
