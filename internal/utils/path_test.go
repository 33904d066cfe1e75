package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TODOCAL_TEST_DIR", "/var/lib/todocal")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde only", "~", home},
		{"tilde with path", "~/logs/todocal.log", filepath.Join(home, "logs/todocal.log")},
		{"absolute path unchanged", "/absolute/path/file.txt", "/absolute/path/file.txt"},
		{"relative path unchanged", "relative/file.txt", "relative/file.txt"},
		{"empty string", "", ""},
		{"env var expansion", "$TODOCAL_TEST_DIR/debug.log", "/var/lib/todocal/debug.log"},
		{"tilde not at start", "logs/~/file", "logs/~/file"},
		{"home via env", "$HOME/.config", filepath.Join(home, ".config")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "config.yaml")

	if err := EnsureParentDir(path, 0o755); err != nil {
		t.Fatalf("EnsureParentDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("parent dir not created: %v", err)
	}

	if err := EnsureParentDir("config.yaml", 0o755); err != nil {
		t.Errorf("EnsureParentDir() for a bare file name error = %v", err)
	}
}
