package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_SilentBeforeInit(t *testing.T) {
	Close()
	// Must not panic without an output.
	Info("nothing %d", 1)
	if GetWriter() != io.Discard {
		t.Error("GetWriter() should be io.Discard before Init")
	}
}

func TestLogger_InitWriter(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Close()

	Info("hello %s", "world")
	Warn("careful")
	Error("broken")

	out := buf.String()
	for _, want := range []string{"[INFO] hello world", "[WARN] careful", "[ERROR] broken"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q should contain %q", out, want)
		}
	}
}

func TestLogger_DebugRequiresVerbose(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Close()
	defer SetVerbose(false)

	SetVerbose(false)
	Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("Debug should be dropped when not verbose")
	}

	SetVerbose(true)
	Debug("shown")
	if !strings.Contains(buf.String(), "[DEBUG] shown") {
		t.Errorf("output %q should contain debug line", buf.String())
	}
}

func TestLogger_InitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "driver.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Info("to file")
	if GetWriter() == io.Discard {
		t.Error("GetWriter() should return the log file after Init")
	}
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] to file") {
		t.Errorf("log file = %q, should contain info line", string(data))
	}
}

func TestLogger_InitBadPath(t *testing.T) {
	err := Init(filepath.Join(t.TempDir(), "missing", "dir", "driver.log"))
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
