package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Format: HumanFormat,
		Level:  WarnLevel,
		Output: &buf,
	})

	logger.Debug("debug message", nil)
	logger.Info("info message", nil)
	logger.Warn("warn message", nil)
	logger.Error("error message", nil)

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be logged")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should be logged")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Format: JSONFormat,
		Level:  InfoLevel,
		Output: &buf,
	})

	logger.Info("analysis complete", map[string]interface{}{
		"markers": 42,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if entry["message"] != "analysis complete" {
		t.Errorf("Expected message 'analysis complete', got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("Expected level 'info', got %v", entry["level"])
	}

	fields, ok := entry["fields"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected fields object in JSON output")
	}
	if fields["markers"] != float64(42) {
		t.Errorf("Expected markers field 42, got %v", fields["markers"])
	}
}

func TestHumanFormatFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Format: HumanFormat,
		Level:  DebugLevel,
		Output: &buf,
	})

	logger.Debug("scanning file", map[string]interface{}{
		"path": "docs/PLAN.md",
	})

	output := buf.String()
	if !strings.Contains(output, "scanning file") {
		t.Errorf("Expected message in output, got %q", output)
	}
	if !strings.Contains(output, "path=docs/PLAN.md") {
		t.Errorf("Expected field in output, got %q", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	// Must not panic with nil fields and must swallow output.
	logger.Error("dropped", nil)
}
