package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// decodeLines decodes each JSON log line written to buf.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			t.Fatalf("malformed log line %q: %v", raw, err)
		}
		lines = append(lines, entry)
	}
	return lines
}

func TestLoggerCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "run-123")

	logger.Info("run started", map[string]any{"entries": 3})

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["run_id"] != "run-123" {
		t.Errorf("missing run_id: %v", lines[0])
	}
	if lines[0]["message"] != "run started" {
		t.Errorf("unexpected message: %v", lines[0])
	}
	if lines[0]["level"] != "info" {
		t.Errorf("unexpected level: %v", lines[0])
	}
}

func TestWithGrammar(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "run-123").WithGrammar("rust")

	logger.Warn("registry merge skipped", nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["grammar"] != "rust" {
		t.Errorf("missing grammar field: %v", lines[0])
	}
	if lines[0]["level"] != "warn" {
		t.Errorf("unexpected level: %v", lines[0])
	}
}

func TestSugaredLogger(t *testing.T) {
	var buf bytes.Buffer
	sugar := New(&buf, "run-123").Sugar().With("command", "build")

	sugar.Infof("building %d grammars with %d workers", 3, 2)
	sugar.Warnf("signal received, cancelling run")
	sugar.Errorf("catalog discovery failed: %v", "boom")

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	wantLevels := []string{"info", "warn", "error"}
	wantMessages := []string{
		"building 3 grammars with 2 workers",
		"signal received, cancelling run",
		"catalog discovery failed: boom",
	}
	for i, line := range lines {
		if line["level"] != wantLevels[i] {
			t.Errorf("line %d level = %v, want %s", i, line["level"], wantLevels[i])
		}
		if line["message"] != wantMessages[i] {
			t.Errorf("line %d message = %v, want %q", i, line["message"], wantMessages[i])
		}
		if line["command"] != "build" {
			t.Errorf("line %d missing command field: %v", i, line)
		}
		if line["run_id"] != "run-123" {
			t.Errorf("line %d missing run_id: %v", i, line)
		}
	}
}
