package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestContractError(t *testing.T) {
	sentinel := errors.New("empty candidate")
	err := NewContractError("judge.Score", "candidate must be non-empty", sentinel)

	if err.Type != ErrorTypeContract {
		t.Errorf("Expected Type to be ErrorTypeContract, got %v", err.Type)
	}

	if !errors.Is(err, sentinel) {
		t.Errorf("Expected error to unwrap to sentinel error")
	}

	expectedMsg := "contract violation in judge.Score: candidate must be non-empty: empty candidate"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	bare := NewContractError("op", "reason", nil)
	if bare.Error() != "contract violation in op: reason" {
		t.Errorf("Unexpected message without underlying error: %q", bare.Error())
	}
}

func TestMatchError(t *testing.T) {
	underlying := errors.New("boom")
	err := NewMatchError("spec/a_spec.rb", "lib/a.rb", underlying)

	if err.Type != ErrorTypeMatch {
		t.Errorf("Expected Type to be ErrorTypeMatch, got %v", err.Type)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := `scoring "lib/a.rb" against "spec/a_spec.rb" failed: boom`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestSourceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"not exist", fs.ErrNotExist, ErrorTypeFileNotFound},
		{"wrapped not exist", fmt.Errorf("open x: %w", fs.ErrNotExist), ErrorTypeFileNotFound},
		{"permission", fs.ErrPermission, ErrorTypePermission},
		{"other", errors.New("disk on fire"), ErrorTypeSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSourceError("read", "/tmp/candidates.txt", tt.err)
			if err.Type != tt.expected {
				t.Errorf("Expected Type %v, got %v", tt.expected, err.Type)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Expected error to unwrap to underlying error")
			}
		})
	}

	err := NewSourceError("read", "", errors.New("closed pipe"))
	if err.Error() != "source read failed: closed pipe" {
		t.Errorf("Unexpected message without path: %q", err.Error())
	}
}

func TestConfigError(t *testing.T) {
	underlying := errors.New("must be positive")
	err := NewConfigError("match.workers", "-1", underlying)

	if err.Field != "match.workers" {
		t.Errorf("Expected Field to be 'match.workers', got %s", err.Field)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "config error for field match.workers (value -1): must be positive"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestMultiError(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")

	multi := NewMultiError([]error{err1, nil, err2, nil})
	if len(multi.Errors) != 2 {
		t.Errorf("Expected 2 errors after filtering nils, got %d", len(multi.Errors))
	}

	if !errors.Is(multi, err1) || !errors.Is(multi, err2) {
		t.Errorf("Expected multi error to match both wrapped errors")
	}

	single := NewMultiError([]error{err1})
	if single.Error() != "error 1" {
		t.Errorf("Expected single error message, got %q", single.Error())
	}

	empty := NewMultiError(nil)
	if empty.Error() != "no errors" {
		t.Errorf("Expected 'no errors', got %q", empty.Error())
	}
	if empty.ErrOrNil() != nil {
		t.Errorf("Expected ErrOrNil to return nil for empty multi error")
	}
	if multi.ErrOrNil() == nil {
		t.Errorf("Expected ErrOrNil to return the multi error")
	}
}
