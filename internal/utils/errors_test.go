package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorWithSuggestion_Error(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		suggestion     string
		wantContains   []string
		wantNotContain string
	}{
		{
			name:         "with suggestion",
			err:          errors.New("todo not found"),
			suggestion:   "Run 'todocal list' to see todo ids",
			wantContains: []string{"todo not found", "Suggestion:", "todocal list"},
		},
		{
			name:           "without suggestion",
			err:            errors.New("simple error"),
			suggestion:     "",
			wantContains:   []string{"simple error"},
			wantNotContain: "Suggestion:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &ErrorWithSuggestion{
				Err:        tt.err,
				Suggestion: tt.suggestion,
			}

			result := e.Error()

			for _, want := range tt.wantContains {
				if !strings.Contains(result, want) {
					t.Errorf("Error() = %q, want to contain %q", result, want)
				}
			}

			if tt.wantNotContain != "" && strings.Contains(result, tt.wantNotContain) {
				t.Errorf("Error() = %q, should not contain %q", result, tt.wantNotContain)
			}
		})
	}
}

func TestErrorWithSuggestion_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrapped := &ErrorWithSuggestion{
		Err:        originalErr,
		Suggestion: "do something",
	}

	if !errors.Is(wrapped, originalErr) {
		t.Error("errors.Is() should find the original error")
	}
}

func TestErrEmptyTitle(t *testing.T) {
	err := ErrEmptyTitle()

	var sugg *ErrorWithSuggestion
	if !errors.As(err, &sugg) {
		t.Fatalf("ErrEmptyTitle() = %T, want *ErrorWithSuggestion", err)
	}
	if sugg.Err.Error() != EmptyTitleMessage {
		t.Errorf("message = %q, want %q", sugg.Err.Error(), EmptyTitleMessage)
	}
}

func TestErrTodoNotFound(t *testing.T) {
	err := ErrTodoNotFound("abc-123")

	if !strings.Contains(err.Error(), "abc-123") {
		t.Errorf("Error() = %q, want the id", err.Error())
	}
	if !strings.Contains(err.Error(), "todocal list") {
		t.Errorf("Error() = %q, want a hint", err.Error())
	}
}

func TestErrBackendOffline(t *testing.T) {
	tests := []struct {
		name           string
		reason         string
		wantSuggestion string
	}{
		{"connection refused", "dial tcp 127.0.0.1:8080: connect: connection refused", "server is running at http://localhost:8080"},
		{"timeout", "context deadline exceeded (Client.Timeout exceeded while awaiting headers) timeout", "slow or unreachable"},
		{"no such host", "dial tcp: lookup todo.invalid: no such host", "base_url"},
		{"other", "something odd", "internet connection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ErrBackendOffline("http://localhost:8080", tt.reason)

			var sugg *ErrorWithSuggestion
			if !errors.As(err, &sugg) {
				t.Fatalf("ErrBackendOffline() = %T", err)
			}
			if !strings.Contains(sugg.Suggestion, tt.wantSuggestion) {
				t.Errorf("Suggestion = %q, want to contain %q", sugg.Suggestion, tt.wantSuggestion)
			}
			if !strings.Contains(err.Error(), "offline") {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestErrInvalidDateAndMonth(t *testing.T) {
	if err := ErrInvalidDate("01/15/2026"); !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Errorf("ErrInvalidDate() = %q", err.Error())
	}
	if err := ErrInvalidMonth("March"); !strings.Contains(err.Error(), "YYYY-MM") {
		t.Errorf("ErrInvalidMonth() = %q", err.Error())
	}
}

func TestErrServerFailure(t *testing.T) {
	base := errors.New("GetAllTodos failed with status 500")
	err := ErrServerFailure("http://localhost:8080", base)

	if !errors.Is(err, base) {
		t.Error("ErrServerFailure() lost the backend error")
	}
	for _, want := range []string{"status 500", "http://localhost:8080", "--verbose"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, want to contain %q", err.Error(), want)
		}
	}
}

func TestErrInvalidConfig(t *testing.T) {
	err := ErrInvalidConfig("ui.theme", "failed on 'oneof'")

	for _, want := range []string{"ui.theme", "oneof", "config.yaml"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, want to contain %q", err.Error(), want)
		}
	}
}

func TestWrapWithSuggestion(t *testing.T) {
	if WrapWithSuggestion(nil, "hint") != nil {
		t.Error("WrapWithSuggestion(nil) should return nil")
	}

	base := errors.New("base")
	err := WrapWithSuggestion(base, "hint")
	if !errors.Is(err, base) {
		t.Error("wrapped error lost the original")
	}
	if !strings.Contains(err.Error(), "hint") {
		t.Errorf("Error() = %q, want the suggestion", err.Error())
	}
}
