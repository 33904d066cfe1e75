package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestPromptYesNoFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y", "y\n", true},
		{"Y", "Y\n", true},
		{"yes", "yes\n", true},
		{"YES", "YES\n", true},
		{"padded yes", "  yes  \n", true},
		{"n", "n\n", false},
		{"NO", "NO\n", false},
		{"no newline", "y", true},
		{"end of input", "", false},
		{"retry then yes", "maybe\ny\n", true},
		{"retry then end", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := PromptYesNoFrom(strings.NewReader(tt.input), &out, "Delete?")
			if got != tt.want {
				t.Errorf("PromptYesNoFrom(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPromptYesNoFrom_Output(t *testing.T) {
	var out bytes.Buffer
	PromptYesNoFrom(strings.NewReader("what\nn\n"), &out, "정말로 삭제하시겠습니까?")

	output := out.String()
	if strings.Count(output, "정말로 삭제하시겠습니까? (y/n): ") != 2 {
		t.Errorf("question not asked twice:\n%s", output)
	}
	if !strings.Contains(output, "Please enter y or n") {
		t.Errorf("missing retry hint:\n%s", output)
	}
}
