package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewValidationNilOnEmpty(t *testing.T) {
	if err := NewValidation(nil); err != nil {
		t.Fatalf("NewValidation(nil) = %v, want nil", err)
	}
	if err := NewValidation([]string{}); err != nil {
		t.Fatalf("NewValidation(empty) = %v, want nil", err)
	}
}

func TestValidationListsEveryRule(t *testing.T) {
	err := NewValidation([]string{"name is required", "city is required"})
	v := AsValidation(err)
	if v == nil {
		t.Fatalf("AsValidation returned nil")
	}
	if len(v.Violations) != 2 {
		t.Fatalf("got %d violations, want 2", len(v.Violations))
	}
	msg := err.Error()
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, "city is required") {
		t.Fatalf("message does not list all rules: %q", msg)
	}
}

func TestSentinelWrapping(t *testing.T) {
	err := Conflictf("centre name %q already in use", "X")
	if !stderrors.Is(err, ErrConflict) {
		t.Fatalf("Conflictf result does not unwrap to ErrConflict")
	}
	if !strings.Contains(err.Error(), `"X"`) {
		t.Fatalf("formatted message lost: %q", err.Error())
	}
	if !stderrors.Is(NotFoundf("asset %s", "a1"), ErrNotFound) {
		t.Fatalf("NotFoundf result does not unwrap to ErrNotFound")
	}
	if !stderrors.Is(PreconditionFailedf("occupied"), ErrPreconditionFailed) {
		t.Fatalf("PreconditionFailedf result does not unwrap to ErrPreconditionFailed")
	}
}
