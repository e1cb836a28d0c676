package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteEmitsJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	Info("conference_created", map[string]any{"key": "abc"})

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if line["message"] != "conference_created" {
		t.Fatalf("unexpected message: %v", line["message"])
	}
	if line["level"] != "info" {
		t.Fatalf("unexpected level: %v", line["level"])
	}
	if line["key"] != "abc" {
		t.Fatalf("field not propagated: %v", line)
	}
}

func TestDebugGatedByFlag(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	SetDebug(false)
	Debug("sql", nil)
	if buf.Len() != 0 {
		t.Fatalf("debug line written while disabled: %s", buf.String())
	}

	SetDebug(true)
	defer SetDebug(false)
	Debug("sql", map[string]any{"query": "SELECT 1"})
	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}
