package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhle/studytrack/internal/model"
)

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(model.LogConfig{Level: "debug", Encoding: "json"}, &buf)
	l.Debug("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decoding log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" {
		t.Fatalf("msg=%v, want hello", entry["msg"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("missing timestamp key in %v", entry)
	}
}

func TestNewWriterBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(model.LogConfig{Level: "loud"}, &buf)
	l.Debug("hidden")
	l.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("info line missing: %q", out)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "studytrack.log")
	l, closeFn, err := New(model.LogConfig{Level: "info", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("log file = %q, want entry", data)
	}
}
