package views

// Tag marks a UI element with a semantic state; renderers map tags to styles
type Tag string

const (
	TagCompleted  Tag = "completed"
	TagOverdue    Tag = "overdue"
	TagDueToday   Tag = "due-today"
	TagOtherMonth Tag = "other-month"
	TagToday      Tag = "today"
)

// Action is a user operation offered on a list row
type Action string

const (
	ActionComplete Action = "complete"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
)

const (
	// EmptyMessage is shown in place of an empty list
	EmptyMessage = "할 일이 없습니다."

	// LoadingMessage is shown while a fetch is outstanding
	LoadingMessage = "로딩 중..."
)

// Weekdays are the calendar column headers, Sunday first
var Weekdays = []string{"일", "월", "화", "수", "목", "금", "토"}

// Row is the rendered form of one todo in the list view
type Row struct {
	ID          string
	Status      string
	Category    string
	Title       string
	Description string
	Created     string
	Updated     string
	Age         string // humanized time since the last update
	DueDate     string // empty when the todo has no deadline
	DueTag      Tag    // TagOverdue, TagDueToday or empty
	Completed   bool
	Actions     []Action
}

// HasAction reports whether the row offers a
func (r Row) HasAction(a Action) bool {
	for _, existing := range r.Actions {
		if existing == a {
			return true
		}
	}
	return false
}

// ListTree is the list view: either rows or a single message
type ListTree struct {
	Rows    []Row
	Message string
}

// CalendarEntry is one todo inside a day cell
type CalendarEntry struct {
	ID    string
	Title string
	Tags  []Tag
}

// Has reports whether the entry carries tag
func (e CalendarEntry) Has(tag Tag) bool {
	return hasTag(e.Tags, tag)
}

// CalendarCell is one day of the month grid
type CalendarCell struct {
	Date    string
	Day     int
	Tags    []Tag
	Entries []CalendarEntry
	More    int // todos beyond the visible entries
}

// Has reports whether the cell carries tag
func (c CalendarCell) Has(tag Tag) bool {
	return hasTag(c.Tags, tag)
}

// MoreLabel returns the overflow indicator, empty when nothing was cut
func (c CalendarCell) MoreLabel() string {
	if c.More <= 0 {
		return ""
	}
	return MoreLabel(c.More)
}

// CalendarTree is the month view: a title and 42 cells in six weeks
type CalendarTree struct {
	Title    string
	Weekdays []string
	Cells    []CalendarCell
}

// Weeks splits the cells into rows of seven
func (t CalendarTree) Weeks() [][]CalendarCell {
	weeks := make([][]CalendarCell, 0, len(t.Cells)/7)
	for i := 0; i+7 <= len(t.Cells); i += 7 {
		weeks = append(weeks, t.Cells[i:i+7])
	}
	return weeks
}

// CellIndex returns the position of date in the grid, or -1
func (t CalendarTree) CellIndex(date string) int {
	for i, c := range t.Cells {
		if c.Date == date {
			return i
		}
	}
	return -1
}

func hasTag(tags []Tag, tag Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
