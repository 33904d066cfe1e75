package formatters

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"todocal/backend"
)

// Truncate shortens s to at most width terminal cells, ending with "…".
// Wide runes (Hangul, CJK) count as two cells. A width of zero disables it.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// TitleFormatter formats the todo title
type TitleFormatter struct {
	ctx *FormatContext
}

// NewTitleFormatter creates a new title formatter
func NewTitleFormatter(ctx *FormatContext) *TitleFormatter {
	return &TitleFormatter{ctx: ctx}
}

// Format formats the title field
// Supported formats: full, truncate
func (f *TitleFormatter) Format(todo backend.Todo, format string, width int) string {
	if format == "truncate" {
		return Truncate(todo.Title, width)
	}
	return todo.Title
}

// DescriptionFormatter formats the todo description
type DescriptionFormatter struct {
	ctx *FormatContext
}

// NewDescriptionFormatter creates a new description formatter
func NewDescriptionFormatter(ctx *FormatContext) *DescriptionFormatter {
	return &DescriptionFormatter{ctx: ctx}
}

// Format formats the description field according to the specified format
// Supported formats: full, truncate, first_line
func (f *DescriptionFormatter) Format(todo backend.Todo, format string, width int) string {
	if todo.Description == "" {
		return ""
	}

	switch format {
	case "full":
		return todo.Description
	case "first_line":
		first, _, _ := strings.Cut(todo.Description, "\n")
		return Truncate(strings.TrimSpace(first), width)
	default:
		// Collapse newlines and runs of spaces
		desc := strings.Join(strings.Fields(todo.Description), " ")
		return Truncate(desc, width)
	}
}

// CategoryFormatter formats the category label, falling back to the default
type CategoryFormatter struct {
	ctx *FormatContext
}

// NewCategoryFormatter creates a new category formatter
func NewCategoryFormatter(ctx *FormatContext) *CategoryFormatter {
	return &CategoryFormatter{ctx: ctx}
}

// Format formats the category field
// Supported formats: plain, bracket, hash
func (f *CategoryFormatter) Format(todo backend.Todo, format string, width int) string {
	category := todo.CategoryOrDefault()

	var result string
	switch format {
	case "bracket":
		result = "[" + category + "]"
	case "hash":
		result = "#" + category
	default:
		result = category
	}

	return Truncate(result, width)
}
