package views

import (
	"fmt"
	"slices"
	"strings"
)

// FieldDefinition lists the display formats a row field accepts.
// The first entry of Formats is not special; DefaultFormat is.
type FieldDefinition struct {
	Name          string
	Description   string
	Formats       []string
	DefaultFormat string
}

var timestampFormats = []string{"full", "relative", "date_only"}

func field(name, description, def string, formats ...string) FieldDefinition {
	return FieldDefinition{Name: name, Description: description, Formats: formats, DefaultFormat: def}
}

// FieldRegistry holds every field a ui.fields override may name
var FieldRegistry = map[string]FieldDefinition{
	"status":      field("status", "Completion status", "symbol", "symbol", "text", "short"),
	"category":    field("category", "Category label", "plain", "plain", "bracket", "hash"),
	"title":       field("title", "Todo title", "full", "full", "truncate"),
	"description": field("description", "Free text description", "truncate", "full", "truncate", "first_line"),
	"due_date":    field("due_date", "Deadline (YYYY-MM-DD)", "full", "full", "relative"),
	"created":     field("created", "Creation timestamp", "full", timestampFormats...),
	"updated":     field("updated", "Last update timestamp", "full", timestampFormats...),
}

func GetFieldDefinition(name string) (FieldDefinition, bool) {
	def, ok := FieldRegistry[name]
	return def, ok
}

// IsValidFormat reports whether format is one of fieldName's formats
func IsValidFormat(fieldName, format string) bool {
	def, ok := GetFieldDefinition(fieldName)
	return ok && slices.Contains(def.Formats, format)
}

// FieldFormats overrides the default display format per field
type FieldFormats map[string]string

// Resolve returns the configured format for field, or its default
func (f FieldFormats) Resolve(field string) string {
	if format, ok := f[field]; ok && format != "" {
		return format
	}
	def, _ := GetFieldDefinition(field)
	return def.DefaultFormat
}

// Validate checks every override against the registry
func (f FieldFormats) Validate() error {
	for field, format := range f {
		def, ok := GetFieldDefinition(field)
		if !ok {
			return fmt.Errorf("unknown field %q", field)
		}
		if !IsValidFormat(field, format) {
			return fmt.Errorf("invalid format %q for field %q (valid: %s)", format, field, strings.Join(def.Formats, ", "))
		}
	}
	return nil
}
