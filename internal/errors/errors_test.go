package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(MarkerInvalid, "line number must be positive", nil)

	msg := err.Error()
	if !strings.Contains(msg, "MARKER_INVALID") {
		t.Errorf("Expected code in message, got %q", msg)
	}
	if !strings.Contains(msg, "line number must be positive") {
		t.Errorf("Expected message text, got %q", msg)
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := stderrors.New("exit status 128")
	err := New(HistoryUnavailable, "git log failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "exit status 128") {
		t.Errorf("Expected cause in message, got %q", err.Error())
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(HistoryUnavailable, "not a git repository", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Fatal("Expected suggested fixes for HISTORY_UNAVAILABLE")
	}
	if err.SuggestedFixes[0].Type != RunCommand {
		t.Errorf("Expected run-command fix, got %s", err.SuggestedFixes[0].Type)
	}

	// Codes without registered fixes return none.
	if fixes := GetSuggestedFixes(InternalError); fixes != nil {
		t.Errorf("Expected no fixes for INTERNAL_ERROR, got %v", fixes)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(RegistryCorrupt, "bad row", nil).WithDetails(map[string]int{"row": 7})
	if err.Details == nil {
		t.Error("Expected details to be attached")
	}
}
