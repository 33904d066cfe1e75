package formatters

import (
	"time"

	"github.com/dustin/go-humanize"

	"todocal/backend"
)

// timestampLayouts are tried in order when parsing server timestamps.
// The backend sends local date-times without a zone.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// DateFormatter formats date fields
type DateFormatter struct {
	ctx       *FormatContext
	fieldName string // "due_date", "created", "updated"
}

// NewDateFormatter creates a new date formatter
func NewDateFormatter(ctx *FormatContext, fieldName string) *DateFormatter {
	return &DateFormatter{
		ctx:       ctx,
		fieldName: fieldName,
	}
}

// Format formats the date field according to the specified format
// Supported formats: full, relative, date_only
func (f *DateFormatter) Format(todo backend.Todo, format string, width int) string {
	raw := f.getRaw(todo)
	if raw == "" {
		return ""
	}

	date, ok := f.parse(raw)
	if !ok {
		// Unparseable values are shown as received
		return Truncate(raw, width)
	}

	var result string

	switch format {
	case "relative":
		result = humanize.RelTime(date, f.ctx.Now, "ago", "from now")
	case "date_only":
		result = date.Format(backend.DateLayout)
	default:
		if f.fieldName == "due_date" {
			result = raw
		} else {
			result = date.Format(f.ctx.DateFormat)
		}
	}

	return Truncate(result, width)
}

// getRaw extracts the raw date string from the todo
func (f *DateFormatter) getRaw(todo backend.Todo) string {
	switch f.fieldName {
	case "due_date":
		return todo.DueDate
	case "created":
		return todo.CreatedAt
	case "updated":
		return todo.UpdatedAt
	default:
		return ""
	}
}

func (f *DateFormatter) parse(raw string) (time.Time, bool) {
	if f.fieldName == "due_date" {
		t, err := time.ParseInLocation(backend.DateLayout, raw, f.ctx.Now.Location())
		return t, err == nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, f.ctx.Now.Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
