package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level, format string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: format, Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newBufferLogger(t, "debug", "json")

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("table created", "buckets", 10)

			entry := decode(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["msg"] != "table created" {
				t.Errorf("msg = %v, want 'table created'", entry["msg"])
			}
			if entry["buckets"] != float64(10) {
				t.Errorf("buckets = %v, want 10", entry["buckets"])
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	l.With("component", "workload").Info("run finished")

	entry := decode(t, buf)
	if entry["component"] != "workload" {
		t.Errorf("component = %v, want workload", entry["component"])
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newBufferLogger(t, "error", "json")

	l.Info("filtered")
	if buf.Len() > 0 {
		t.Error("Info should be filtered at error level")
	}

	SetLevel("debug")
	l.Info("visible")
	if buf.Len() == 0 {
		t.Error("Info should be logged after level changed to debug")
	}
	if got := GetLevel(); got != "debug" {
		t.Errorf("GetLevel() = %q, want debug", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"INFO", "info"},
		{"warning", "warn"},
		{"ERROR", "error"},
		{"invalid", "info"},
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			SetLevel(tt.input)
			if got := GetLevel(); got != tt.expected {
				t.Errorf("SetLevel(%q); GetLevel() = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogger_TextFormat(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "text")

	l.Info("cleared", "buckets", 4)

	out := buf.String()
	if !strings.Contains(out, "cleared") || !strings.Contains(out, "buckets=4") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestTruncate(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf, MaxValueLen: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("lookup", "key", "abcdefgh", "short", "ab")

	entry := decode(t, &buf)
	if entry["key"] != "abcd...(+4 bytes)" {
		t.Errorf("key = %v, want truncated value", entry["key"])
	}
	if entry["short"] != "ab" {
		t.Errorf("short = %v, want ab", entry["short"])
	}
	if entry["msg"] != "lookup" {
		t.Errorf("msg = %v, want lookup", entry["msg"])
	}
}

func TestDefaultLogger(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")
	prev := Default()
	SetDefault(l)
	defer SetDefault(prev)

	Info("via default")
	if buf.Len() == 0 {
		t.Error("Info() produced no output")
	}
}

func TestNop(t *testing.T) {
	// Should not panic.
	Nop().With("a", 1).Error("discarded")
}
