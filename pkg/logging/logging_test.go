package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "json")
	logger.Debug("hidden")
	logger.Info("Bill created", "bill_id", "b1")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not a single JSON record: %v\n%s", err, buf.String())
	}
	if record["msg"] != "Bill created" || record["bill_id"] != "b1" {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestNew_TextIsUncoloredOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, "text").Warn("Reference collision", "attempt", 2)

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected color codes: %q", out)
	}
	if !strings.Contains(out, "Reference collision") || !strings.Contains(out, "attempt=2") {
		t.Errorf("unexpected output: %q", out)
	}
}
