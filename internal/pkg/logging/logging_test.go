package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/samirrijal/bubblepoint/internal/pkg/logging"
)

func TestNew_JSONLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "warn", "json")

	l.Info("dropped")
	l.Warn("kept", "x1", 0.5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "kept" || rec["x1"] != 0.5 {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, "debug", "text").Debug("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	if logging.FromContext(context.Background()) != slog.Default() {
		t.Error("expected default logger for bare context")
	}

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := logging.WithLogger(context.Background(), l)
	if logging.FromContext(ctx) != l {
		t.Error("expected stored logger")
	}
}
