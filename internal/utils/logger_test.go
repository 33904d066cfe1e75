package utils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureLog sends the global logger to a buffer for the duration of the test
func captureLog(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger := GetLogger()
	logger.SetOutput(&buf)
	SetVerboseMode(verbose)
	t.Cleanup(func() {
		SetVerboseMode(false)
		logger.SetOutput(os.Stderr)
	})
	return &buf
}

func TestLoggerLevels(t *testing.T) {
	buf := captureLog(t, false)

	Debugf("hidden %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Error("debug message logged without verbose mode")
	}
	for _, want := range []string{"info 2", "warn 3", "error 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerVerbose(t *testing.T) {
	buf := captureLog(t, true)

	if !GetLogger().IsVerbose() {
		t.Fatal("IsVerbose() = false after SetVerboseMode(true)")
	}
	Debugf("fetching %s", "/api/todos")

	if !strings.Contains(buf.String(), "fetching /api/todos") {
		t.Errorf("debug message missing:\n%s", buf.String())
	}
}

func TestLogOperation(t *testing.T) {
	buf := captureLog(t, true)

	if err := LogOperation("load todos", func() error { return nil }); err != nil {
		t.Errorf("LogOperation() error = %v", err)
	}

	failure := errors.New("boom")
	if err := LogOperationf("delete %s", func() error { return failure }, "42"); !errors.Is(err, failure) {
		t.Errorf("LogOperationf() error = %v, want %v", err, failure)
	}

	out := buf.String()
	for _, want := range []string{"operation started", "operation completed", "load todos", "operation failed", "delete 42", "err=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestLogToFile(t *testing.T) {
	captureLog(t, false)
	path := filepath.Join(t.TempDir(), "todocal-debug.log")

	f, err := LogToFile(path)
	if err != nil {
		t.Fatalf("LogToFile() error = %v", err)
	}
	Infof("written to file")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file = %q", string(data))
	}
}

func TestLogToFileBadPath(t *testing.T) {
	if _, err := LogToFile(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); err == nil {
		t.Error("LogToFile() returned no error for a missing directory")
	}
}
