package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"garbage", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelWarn)
	logger.SetOutput(&buf)

	logger.Debug("dropped debug")
	logger.Info("dropped info")
	logger.Warn("kept warn")
	logger.Error("kept error %d", 7)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("lines below the threshold leaked:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] kept warn") {
		t.Errorf("warn line missing:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] kept error 7") {
		t.Errorf("error line missing or unformatted:\n%s", out)
	}
}
