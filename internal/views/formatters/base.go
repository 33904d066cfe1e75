package formatters

import (
	"time"

	"todocal/backend"
)

// DefaultDateFormat mirrors the ko-KR locale string the web client showed
const DefaultDateFormat = "2006. 1. 2. 15:04:05"

// FieldFormatter is the base interface for all field formatters
type FieldFormatter interface {
	// Format returns the formatted string representation of a field value
	Format(todo backend.Todo, format string, width int) string
}

// FormatContext provides additional context for formatting
type FormatContext struct {
	// DateFormat is the Go time format string for timestamp display
	DateFormat string

	// Now is the current time, used for relative ages and the today comparison
	Now time.Time
}

// NewFormatContext creates a new format context with default values
func NewFormatContext(dateFormat string, now time.Time) *FormatContext {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	return &FormatContext{
		DateFormat: dateFormat,
		Now:        now,
	}
}

// Today returns the local date of Now as YYYY-MM-DD
func (c *FormatContext) Today() string {
	return c.Now.Format(backend.DateLayout)
}
