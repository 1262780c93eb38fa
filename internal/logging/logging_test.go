package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}
	logger.Debug("hidden")
	logger.WithField("text", 3).Info("graded")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug to be filtered: %q", out)
	}
	if !strings.Contains(out, "msg=graded") || !strings.Contains(out, "text=3") {
		t.Fatalf("unexpected text output: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "JSON", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.WithField("chapter", "Wetter").Debug("drill session built")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "drill session built" || entry["chapter"] != "Wetter" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestOpenFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "seefunk.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	if _, err := f.WriteString("line\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Fatalf("unexpected log contents %q (%v)", data, err)
	}
}
