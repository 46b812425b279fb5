package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindHelpers(t *testing.T) {
	verr := Validationf("name is required")
	nerr := NotFound("piece", 42)
	cerr := Conflictf("piece %d is already sold", 42)

	if !IsValidation(verr) || IsNotFound(verr) || IsConflict(verr) {
		t.Errorf("validation error misclassified")
	}
	if !IsNotFound(nerr) || IsValidation(nerr) || IsConflict(nerr) {
		t.Errorf("not-found error misclassified")
	}
	if !IsConflict(cerr) || IsValidation(cerr) || IsNotFound(cerr) {
		t.Errorf("conflict error misclassified")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("transfer failed: %w", NotFound("container", 7))
	if !IsNotFound(err) {
		t.Errorf("IsNotFound should see through fmt.Errorf wrapping")
	}
}

func TestNotFoundMessage(t *testing.T) {
	if got := NotFound("counter", 3).Error(); got != "counter 3 not found" {
		t.Errorf("message = %q", got)
	}
	if got := NotFound("user", 0).Error(); got != "user not found" {
		t.Errorf("zero-id message = %q", got)
	}
}

func TestPlainErrorsAreNoKind(t *testing.T) {
	err := errors.New("boom")
	if IsValidation(err) || IsNotFound(err) || IsConflict(err) {
		t.Errorf("plain error classified as a kind")
	}
}
