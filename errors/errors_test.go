package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassification(t *testing.T) {
	err := Classification("shuffle")
	if err.Code != ErrCodeClassification {
		t.Errorf("code = %s, want %s", err.Code, ErrCodeClassification)
	}
	if !err.Fallback {
		t.Error("classification errors must permit sequential fallback")
	}
	if err.Details["kind"] != "shuffle" {
		t.Errorf("details kind = %v, want shuffle", err.Details["kind"])
	}
	if !strings.Contains(err.Error(), "shuffle") {
		t.Errorf("message should mention the kind: %s", err.Error())
	}
}

func TestUnsupportedComposition_NotFallback(t *testing.T) {
	err := UnsupportedComposition("filter", "removal class out of range")
	if err.Fallback {
		t.Error("metadata defects are fatal, not fallback conditions")
	}
	if err.Code != ErrCodeUnsupportedComposition {
		t.Errorf("code = %s, want %s", err.Code, ErrCodeUnsupportedComposition)
	}
}

func TestExecution_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("predicate panicked")
	err := Execution("materialize", cause)

	if !stderrors.Is(err, cause) {
		t.Error("Execution should wrap its cause for errors.Is")
	}
	if !strings.Contains(err.Error(), "cause:") {
		t.Errorf("error string should include cause: %s", err.Error())
	}
}

func TestNew_FallbackDetection(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		fallback bool
	}{
		{ErrCodeClassification, true},
		{ErrCodeUnsupportedComposition, false},
		{ErrCodeInvalidPipeline, false},
		{ErrCodeExecution, false},
	}

	for _, tt := range tests {
		err := New(tt.code, "test")
		if err.Fallback != tt.fallback {
			t.Errorf("New(%s).Fallback = %v, want %v", tt.code, err.Fallback, tt.fallback)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(InvalidPipeline("nil")); got != ErrCodeInvalidPipeline {
		t.Errorf("CodeOf = %s, want %s", got, ErrCodeInvalidPipeline)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("CodeOf(plain error) = %s, want empty", got)
	}
	wrapped := fmt.Errorf("outer: %w", Classification("tee"))
	if got := CodeOf(wrapped); got != ErrCodeClassification {
		t.Errorf("CodeOf(wrapped) = %s, want %s", got, ErrCodeClassification)
	}
}

func TestCanFallback(t *testing.T) {
	if !CanFallback(Classification("tee")) {
		t.Error("CanFallback(classification) = false, want true")
	}
	if CanFallback(Execution("scatter", fmt.Errorf("boom"))) {
		t.Error("CanFallback(execution) = true, want false")
	}
	if CanFallback(fmt.Errorf("plain")) {
		t.Error("CanFallback(plain error) = true, want false")
	}
}

func TestWithDetail(t *testing.T) {
	err := InvalidPipeline("chain does not end in a factory").
		WithDetail("depth", 4)
	if err.Details["depth"] != 4 {
		t.Errorf("details depth = %v, want 4", err.Details["depth"])
	}
}
