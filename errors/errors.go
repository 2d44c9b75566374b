package errors

import (
	stderrors "errors"
	"fmt"
)

// PlanError is the unified error type for the planner.
type PlanError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fallback indicates the caller may evaluate the original pipeline
	// sequentially instead of aborting.
	Fallback bool `json:"fallback"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *PlanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *PlanError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *PlanError) WithCause(cause error) *PlanError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *PlanError) WithDetail(key string, value any) *PlanError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new PlanError with automatic fallback detection.
func New(code ErrorCode, message string) *PlanError {
	return &PlanError{
		Code:     code,
		Message:  message,
		Fallback: CanFallbackCode(code),
	}
}

// CodeOf returns the error code carried by err, or "" if err is not a PlanError.
func CodeOf(err error) ErrorCode {
	var pe *PlanError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// CanFallback reports whether err permits sequential fallback evaluation.
func CanFallback(err error) bool {
	var pe *PlanError
	if stderrors.As(err, &pe) {
		return pe.Fallback
	}
	return false
}

// --- Common Error Constructors ---

// Classification creates a new PlanError for a stage kind the registry
// does not know. The caller must fall back to sequential evaluation.
func Classification(kind string) *PlanError {
	return &PlanError{
		Code:     ErrCodeClassification,
		Message:  fmt.Sprintf("stage kind %q is not registered; falling back to sequential evaluation is required", kind),
		Fallback: true,
		Details:  map[string]any{"kind": kind},
	}
}

// UnsupportedComposition creates a new PlanError for a stage whose metadata
// matches no synthesis rule. The rule table is total over the registry's
// classification space, so this indicates a metadata defect.
func UnsupportedComposition(kind, reason string) *PlanError {
	return &PlanError{
		Code:     ErrCodeUnsupportedComposition,
		Message:  fmt.Sprintf("no synthesis rule for stage %q: %s", kind, reason),
		Fallback: false,
		Details:  map[string]any{"kind": kind},
	}
}

// InvalidPipeline creates a new PlanError for a malformed pipeline value.
func InvalidPipeline(reason string) *PlanError {
	return &PlanError{
		Code:     ErrCodeInvalidPipeline,
		Message:  fmt.Sprintf("invalid pipeline: %s", reason),
		Fallback: false,
	}
}

// Validation creates a new PlanError for configuration validation failures.
func Validation(message string) *PlanError {
	return &PlanError{
		Code:     ErrCodeInvalidConfig,
		Message:  message,
		Fallback: false,
	}
}

// Execution creates a new PlanError for a failure while running a plan.
func Execution(operation string, cause error) *PlanError {
	return &PlanError{
		Code:     ErrCodeExecution,
		Message:  fmt.Sprintf("plan execution failed during %s", operation),
		Fallback: false,
		Details:  map[string]any{"operation": operation},
		Cause:    cause,
	}
}
