package views

import (
	"fmt"

	"todocal/backend"
	"todocal/internal/calendar"
	"todocal/internal/views/formatters"
)

// MoreLabel formats the overflow indicator of a calendar cell
func MoreLabel(n int) string {
	return fmt.Sprintf("+%d개 더", n)
}

// TreeBuilder turns todos into list and calendar trees.
// It owns one formatter per field, created from the registry.
type TreeBuilder struct {
	ctx     *formatters.FormatContext
	formats FieldFormats
	fmtMap  map[string]formatters.FieldFormatter
}

// NewTreeBuilder creates a builder. A nil formats uses the field defaults.
func NewTreeBuilder(ctx *formatters.FormatContext, formats FieldFormats) *TreeBuilder {
	b := &TreeBuilder{
		ctx:     ctx,
		formats: formats,
		fmtMap:  make(map[string]formatters.FieldFormatter),
	}
	b.initializeFormatters()
	return b
}

// initializeFormatters creates formatter instances for all registered fields
func (b *TreeBuilder) initializeFormatters() {
	for name := range FieldRegistry {
		var formatter formatters.FieldFormatter

		switch name {
		case "status":
			formatter = formatters.NewStatusFormatter(b.ctx)
		case "category":
			formatter = formatters.NewCategoryFormatter(b.ctx)
		case "title":
			formatter = formatters.NewTitleFormatter(b.ctx)
		case "description":
			formatter = formatters.NewDescriptionFormatter(b.ctx)
		case "due_date", "created", "updated":
			formatter = formatters.NewDateFormatter(b.ctx, name)
		}

		if formatter != nil {
			b.fmtMap[name] = formatter
		}
	}
}

// Today returns the date the builder tags due dates against
func (b *TreeBuilder) Today() string {
	return b.ctx.Today()
}

func (b *TreeBuilder) field(todo backend.Todo, name string) string {
	formatter, ok := b.fmtMap[name]
	if !ok {
		return ""
	}
	return formatter.Format(todo, b.formats.Resolve(name), 0)
}

// BuildRow renders a single todo for the list view
func (b *TreeBuilder) BuildRow(todo backend.Todo) Row {
	row := Row{
		ID:          todo.ID,
		Status:      b.field(todo, "status"),
		Category:    b.field(todo, "category"),
		Title:       b.field(todo, "title"),
		Description: b.field(todo, "description"),
		Created:     b.field(todo, "created"),
		Updated:     b.field(todo, "updated"),
		Completed:   todo.Completed,
	}

	if todo.UpdatedAt != "" {
		row.Age = b.fmtMap["updated"].Format(todo, "relative", 0)
	}

	if todo.HasDueDate() {
		row.DueDate = b.field(todo, "due_date")
		row.DueTag = dueTag(calendar.Classify(todo.DueDate, b.Today()))
	}

	if !todo.Completed {
		row.Actions = append(row.Actions, ActionComplete)
	}
	row.Actions = append(row.Actions, ActionEdit, ActionDelete)

	return row
}

// BuildList renders todos in the order received
func (b *TreeBuilder) BuildList(todos []backend.Todo) ListTree {
	if len(todos) == 0 {
		return ListTree{Message: EmptyMessage}
	}

	tree := ListTree{Rows: make([]Row, 0, len(todos))}
	for _, todo := range todos {
		tree.Rows = append(tree.Rows, b.BuildRow(todo))
	}
	return tree
}

// BuildCalendar fills the month grid with the todos binned by due date.
// Each cell shows at most limit entries, incomplete first.
func (b *TreeBuilder) BuildCalendar(grid calendar.Grid, bins map[string][]backend.Todo, limit int) CalendarTree {
	today := b.Today()
	tree := CalendarTree{
		Title:    grid.Label(),
		Weekdays: Weekdays,
		Cells:    make([]CalendarCell, 0, len(grid.Cells)),
	}

	for _, c := range grid.Cells {
		cell := CalendarCell{Date: c.Date, Day: c.Day}
		if !c.InMonth {
			cell.Tags = append(cell.Tags, TagOtherMonth)
		}
		if c.IsToday {
			cell.Tags = append(cell.Tags, TagToday)
		}

		entries, more := calendar.DayEntries(bins[c.Date], today, limit)
		cell.More = more
		for _, e := range entries {
			entry := CalendarEntry{ID: e.Todo.ID, Title: e.Todo.Title}
			if e.Completed {
				entry.Tags = append(entry.Tags, TagCompleted)
			}
			if tag := dueTag(e.Due); tag != "" {
				entry.Tags = append(entry.Tags, tag)
			}
			cell.Entries = append(cell.Entries, entry)
		}

		tree.Cells = append(tree.Cells, cell)
	}

	return tree
}

func dueTag(status calendar.DueStatus) Tag {
	switch status {
	case calendar.Overdue:
		return TagOverdue
	case calendar.DueToday:
		return TagDueToday
	default:
		return ""
	}
}
