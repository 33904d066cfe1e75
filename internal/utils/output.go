package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format flags
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateFormat checks a --format value
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return WrapWithSuggestion(fmt.Errorf("unknown output format %q", format), "Use one of: text, json, yaml")
	}
}

// WriteJSON writes data to w as two-space indented JSON with a trailing newline
func WriteJSON(w io.Writer, data interface{}) error {
	out, err := MarshalJSON(data)
	if err != nil {
		return err
	}
	_, err = w.Write(append(out, '\n'))
	return err
}

// WriteYAML writes data to w as a YAML document
func WriteYAML(w io.Writer, data interface{}) error {
	out, err := MarshalYAML(data)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func MarshalJSON(data interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return out, nil
}

func MarshalYAML(data interface{}) ([]byte, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return out, nil
}
