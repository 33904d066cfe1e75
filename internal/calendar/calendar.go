// Package calendar builds month grids and bins todos onto their due dates.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"todocal/backend"
)

const (
	// CellCount is the fixed size of a month grid: six weeks of seven days
	CellCount = 42

	// DefaultItemsPerCell is how many todos a day cell shows before "+N"
	DefaultItemsPerCell = 3
)

// Cell is one day of the month grid
type Cell struct {
	Date    string // YYYY-MM-DD
	Day     int
	InMonth bool
	IsToday bool
}

// Grid is the 42-cell layout of one month, starting on a Sunday
type Grid struct {
	Year  int
	Month time.Month
	Cells []Cell
}

// Weeks splits the grid into rows of seven cells
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// Label returns the month header, e.g. "2024년 1월"
func (g Grid) Label() string {
	return fmt.Sprintf("%d년 %d월", g.Year, int(g.Month))
}

// Today returns the local calendar date of now as YYYY-MM-DD
func Today(now time.Time) string {
	return now.Format(backend.DateLayout)
}

// FirstOfMonth normalizes t to midnight on the first day of its month
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ShiftMonth moves the anchor by delta months. The result is always the
// first of the month, so Jan 31 + 1 is in February rather than March.
func ShiftMonth(anchor time.Time, delta int) time.Time {
	return FirstOfMonth(anchor).AddDate(0, delta, 0)
}

// MonthLabel formats the header for the anchor month, e.g. "2024년 1월"
func MonthLabel(anchor time.Time) string {
	return fmt.Sprintf("%d년 %d월", anchor.Year(), int(anchor.Month()))
}

// BuildMonth lays out the month containing anchor. Leading cells hold the
// trailing days of the previous month (one per weekday before the 1st, Sunday
// first), then every day of the month, then next-month days up to 42 cells.
func BuildMonth(anchor time.Time, today string) Grid {
	first := FirstOfMonth(anchor)
	lead := int(first.Weekday())
	start := first.AddDate(0, 0, -lead)

	grid := Grid{
		Year:  first.Year(),
		Month: first.Month(),
		Cells: make([]Cell, 0, CellCount),
	}

	for i := 0; i < CellCount; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(backend.DateLayout)
		grid.Cells = append(grid.Cells, Cell{
			Date:    date,
			Day:     day.Day(),
			InMonth: day.Month() == first.Month() && day.Year() == first.Year(),
			IsToday: date == today,
		})
	}

	return grid
}

// GroupByDueDate bins todos by due date, keeping fetch order inside each bin.
// Todos without a due date are left out.
func GroupByDueDate(todos []backend.Todo) map[string][]backend.Todo {
	bins := make(map[string][]backend.Todo)
	for _, t := range todos {
		if !t.HasDueDate() {
			continue
		}
		bins[t.DueDate] = append(bins[t.DueDate], t)
	}
	return bins
}

// DueStatus tags a due date relative to today
type DueStatus int

const (
	DueNone DueStatus = iota
	DueToday
	Overdue
)

// String returns the tag name used by renderers
func (s DueStatus) String() string {
	switch s {
	case DueToday:
		return "due-today"
	case Overdue:
		return "overdue"
	default:
		return ""
	}
}

// Classify compares ISO dates as plain strings
func Classify(dueDate, today string) DueStatus {
	switch {
	case dueDate == "":
		return DueNone
	case dueDate < today:
		return Overdue
	case dueDate == today:
		return DueToday
	default:
		return DueNone
	}
}

// Entry is one todo shown inside a day cell
type Entry struct {
	Todo      backend.Todo
	Completed bool
	Due       DueStatus
}

// DayEntries orders a cell's todos incomplete-first (stable otherwise), keeps
// at most limit of them and reports how many were cut. A limit below one
// falls back to DefaultItemsPerCell.
func DayEntries(todos []backend.Todo, today string, limit int) ([]Entry, int) {
	if limit < 1 {
		limit = DefaultItemsPerCell
	}

	ordered := make([]backend.Todo, len(todos))
	copy(ordered, todos)
	sort.SliceStable(ordered, func(i, j int) bool {
		return !ordered[i].Completed && ordered[j].Completed
	})

	more := 0
	if len(ordered) > limit {
		more = len(ordered) - limit
		ordered = ordered[:limit]
	}

	entries := make([]Entry, 0, len(ordered))
	for _, t := range ordered {
		entries = append(entries, Entry{
			Todo:      t,
			Completed: t.Completed,
			Due:       Classify(t.DueDate, today),
		})
	}

	return entries, more
}
