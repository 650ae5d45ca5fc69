package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCriticalLevelRenderedByName(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: slog.LevelInfo, Format: "json"})

	log.Critical("db: unreachable", "attempt", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "CRITICAL" {
		t.Fatalf("expected level CRITICAL, got %v", entry["level"])
	}
	if entry["msg"] != "db: unreachable" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
}

func TestBusinessErrorLogsAtWarnWithErr(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: slog.LevelInfo, Format: "json", Service: "test"})

	log.BusinessError("goals.allocate: insufficient funds", errors.New("insufficient funds"), "goal_id", "g-1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Fatalf("expected WARN, got %v", entry["level"])
	}
	if entry["err"] != "insufficient funds" {
		t.Fatalf("expected err attribute, got %v", entry["err"])
	}
	if entry["service"] != "test" || entry["goal_id"] != "g-1" {
		t.Fatalf("missing attributes: %v", entry)
	}
}

func TestNilErrorsAreSkipped(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: slog.LevelDebug, Format: "text"})

	log.BusinessError("noop", nil)
	log.InternalError("noop", nil)

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		value string
		env   string
		want  slog.Level
	}{
		{"", "production", slog.LevelInfo},
		{"", "development", slog.LevelDebug},
		{"WARNING", "", slog.LevelWarn},
		{" error ", "", slog.LevelError},
		{"fatal", "", LevelCritical},
		{"verbose", "development", slog.LevelDebug},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.value, tc.env); got != tc.want {
			t.Fatalf("parseLevel(%q, %q) = %v, want %v", tc.value, tc.env, got, tc.want)
		}
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: slog.LevelInfo, Format: "TEXT"})
	log.With("user_id", "u-1").Info("summary: computed")

	line := buf.String()
	if !strings.Contains(line, "msg=\"summary: computed\"") || !strings.Contains(line, "user_id=u-1") {
		t.Fatalf("unexpected text line %q", line)
	}
}
