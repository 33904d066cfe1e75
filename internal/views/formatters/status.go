package formatters

import "todocal/backend"

// StatusFormatter formats the completion flag
type StatusFormatter struct {
	ctx *FormatContext
}

// NewStatusFormatter creates a new status formatter
func NewStatusFormatter(ctx *FormatContext) *StatusFormatter {
	return &StatusFormatter{ctx: ctx}
}

// Format formats the status field according to the specified format
// Supported formats: symbol, text, short
func (f *StatusFormatter) Format(todo backend.Todo, format string, width int) string {
	var result string

	switch format {
	case "text":
		result = f.formatText(todo.Completed)
	case "short":
		result = f.formatShort(todo.Completed)
	default:
		result = f.formatSymbol(todo.Completed)
	}

	return Truncate(result, width)
}

func (f *StatusFormatter) formatSymbol(completed bool) string {
	if completed {
		return "✓"
	}
	return "○"
}

func (f *StatusFormatter) formatText(completed bool) string {
	if completed {
		return "완료"
	}
	return "미완료"
}

func (f *StatusFormatter) formatShort(completed bool) string {
	if completed {
		return "D"
	}
	return "T"
}
