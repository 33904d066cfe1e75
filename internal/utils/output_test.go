package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sampleTodo struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", f, err)
		}
	}

	err := ValidateFormat("xml")
	var sugg *ErrorWithSuggestion
	if !errors.As(err, &sugg) {
		t.Fatalf("ValidateFormat(xml) = %v, want *ErrorWithSuggestion", err)
	}
}

func TestWriteJSON(t *testing.T) {
	data := []sampleTodo{{ID: "1", Title: "우유 사기", Category: "일반"}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var got []sampleTodo
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got) != 1 || got[0] != data[0] {
		t.Errorf("round trip = %+v", got)
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Errorf("output not indented:\n%s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	data := sampleTodo{ID: "1", Title: "Buy milk", Category: "일반"}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, data); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	var got sampleTodo
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got != data {
		t.Errorf("round trip = %+v", got)
	}
}

func TestMarshalErrors(t *testing.T) {
	if _, err := MarshalJSON(make(chan int)); err == nil {
		t.Error("MarshalJSON(chan) returned no error")
	}
	if err := WriteJSON(&bytes.Buffer{}, func() {}); err == nil {
		t.Error("WriteJSON(func) returned no error")
	}
}
