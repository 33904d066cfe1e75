package views

import (
	"strings"
	"testing"
	"time"

	"todocal/backend"
	"todocal/internal/calendar"
	"todocal/internal/views/formatters"
)

var testNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.Local)

func newTestBuilder() *TreeBuilder {
	return NewTreeBuilder(formatters.NewFormatContext("", testNow), nil)
}

func TestBuildListEmpty(t *testing.T) {
	tree := newTestBuilder().BuildList(nil)
	if len(tree.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(tree.Rows))
	}
	if tree.Message != EmptyMessage {
		t.Errorf("Message = %q, want %q", tree.Message, EmptyMessage)
	}
}

func TestBuildListKeepsOrder(t *testing.T) {
	todos := []backend.Todo{{ID: "b", Title: "B"}, {ID: "a", Title: "A"}, {ID: "c", Title: "C"}}
	tree := newTestBuilder().BuildList(todos)

	if tree.Message != "" {
		t.Errorf("Message = %q, want empty", tree.Message)
	}
	for i, want := range []string{"b", "a", "c"} {
		if tree.Rows[i].ID != want {
			t.Errorf("row %d = %s, want %s", i, tree.Rows[i].ID, want)
		}
	}
}

func TestBuildRow(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		name         string
		todo         backend.Todo
		wantDueTag   Tag
		wantComplete bool
		wantCategory string
	}{
		{"overdue", backend.Todo{DueDate: "2024-01-09"}, TagOverdue, true, backend.DefaultCategory},
		{"due today", backend.Todo{DueDate: "2024-01-10", Category: "업무"}, TagDueToday, true, "업무"},
		{"future", backend.Todo{DueDate: "2024-01-11"}, "", true, backend.DefaultCategory},
		{"no due date", backend.Todo{}, "", true, backend.DefaultCategory},
		{"completed overdue", backend.Todo{DueDate: "2024-01-01", Completed: true}, TagOverdue, false, backend.DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := b.BuildRow(tt.todo)
			if row.DueTag != tt.wantDueTag {
				t.Errorf("DueTag = %q, want %q", row.DueTag, tt.wantDueTag)
			}
			if row.HasAction(ActionComplete) != tt.wantComplete {
				t.Errorf("complete action offered = %v, want %v", row.HasAction(ActionComplete), tt.wantComplete)
			}
			if !row.HasAction(ActionEdit) || !row.HasAction(ActionDelete) {
				t.Error("edit and delete should always be offered")
			}
			if row.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", row.Category, tt.wantCategory)
			}
			if (row.DueDate != "") != tt.todo.HasDueDate() {
				t.Errorf("DueDate = %q for todo due %q", row.DueDate, tt.todo.DueDate)
			}
		})
	}
}

func TestBuildRowTimestamps(t *testing.T) {
	row := newTestBuilder().BuildRow(backend.Todo{
		CreatedAt: "2024-01-08T09:05:03.123456",
		UpdatedAt: "2024-01-10T11:00:00",
	})

	if row.Created != "2024. 1. 8. 09:05:03" {
		t.Errorf("Created = %q", row.Created)
	}
	if row.Updated != "2024. 1. 10. 11:00:00" {
		t.Errorf("Updated = %q", row.Updated)
	}
	if row.Age != "1 hour ago" {
		t.Errorf("Age = %q", row.Age)
	}
}

func TestBuildRowFieldFormats(t *testing.T) {
	b := NewTreeBuilder(formatters.NewFormatContext("", testNow), FieldFormats{"category": "hash", "status": "text"})
	row := b.BuildRow(backend.Todo{Category: "업무", Completed: true})

	if row.Category != "#업무" {
		t.Errorf("Category = %q", row.Category)
	}
	if row.Status != "완료" {
		t.Errorf("Status = %q", row.Status)
	}
}

func TestBuildCalendarExample(t *testing.T) {
	todos := []backend.Todo{
		{ID: "A", Title: "A", DueDate: "2024-01-05"},
		{ID: "B", Title: "B", DueDate: "2024-01-05", Completed: true},
		{ID: "C", Title: "C", DueDate: "2024-01-05"},
		{ID: "D", Title: "D", DueDate: "2024-01-05"},
		{ID: "E", Title: "no date"},
	}

	b := newTestBuilder()
	grid := calendar.BuildMonth(testNow, b.Today())
	tree := b.BuildCalendar(grid, calendar.GroupByDueDate(todos), 3)

	if tree.Title != "2024년 1월" {
		t.Errorf("Title = %q", tree.Title)
	}
	if len(tree.Cells) != calendar.CellCount {
		t.Fatalf("got %d cells", len(tree.Cells))
	}

	idx := tree.CellIndex("2024-01-05")
	if idx < 0 {
		t.Fatal("2024-01-05 not in grid")
	}
	cell := tree.Cells[idx]

	var ids []string
	for _, e := range cell.Entries {
		ids = append(ids, e.ID)
		if !e.Has(TagOverdue) {
			t.Errorf("entry %s should be tagged overdue", e.ID)
		}
		if e.Has(TagCompleted) {
			t.Errorf("entry %s should not be completed", e.ID)
		}
	}
	if strings.Join(ids, ",") != "A,C,D" {
		t.Errorf("entries = %v, want A,C,D", ids)
	}
	if cell.More != 1 || cell.MoreLabel() != "+1개 더" {
		t.Errorf("More = %d (%q), want 1", cell.More, cell.MoreLabel())
	}

	today := tree.Cells[tree.CellIndex("2024-01-10")]
	if !today.Has(TagToday) {
		t.Error("2024-01-10 should be tagged today")
	}
	if !tree.Cells[0].Has(TagOtherMonth) {
		t.Error("2023-12-31 should be tagged other-month")
	}
}

func TestBuildCalendarCompletedKeepsDueTag(t *testing.T) {
	b := newTestBuilder()
	grid := calendar.BuildMonth(testNow, b.Today())
	bins := calendar.GroupByDueDate([]backend.Todo{{ID: "x", DueDate: "2024-01-10", Completed: true}})

	tree := b.BuildCalendar(grid, bins, 3)
	entry := tree.Cells[tree.CellIndex("2024-01-10")].Entries[0]
	if !entry.Has(TagCompleted) || !entry.Has(TagDueToday) {
		t.Errorf("entry tags = %v, want completed and due-today", entry.Tags)
	}
}

func TestFieldFormats(t *testing.T) {
	if err := (FieldFormats{"description": "first_line"}).Validate(); err != nil {
		t.Errorf("valid override rejected: %v", err)
	}
	if err := (FieldFormats{"description": "emoji"}).Validate(); err == nil {
		t.Error("invalid format accepted")
	}
	if err := (FieldFormats{"priority": "number"}).Validate(); err == nil {
		t.Error("unknown field accepted")
	}

	var none FieldFormats
	if got := none.Resolve("created"); got != "full" {
		t.Errorf("Resolve(created) = %q, want default", got)
	}
}

func TestGetFieldDefinition(t *testing.T) {
	for name := range FieldRegistry {
		def, ok := GetFieldDefinition(name)
		if !ok || def.Name != name {
			t.Errorf("GetFieldDefinition(%q) = %+v, %v", name, def, ok)
		}
		if !IsValidFormat(name, def.DefaultFormat) {
			t.Errorf("default format %q of %q is not in its format list", def.DefaultFormat, name)
		}
	}
	if _, ok := GetFieldDefinition("nonexistent"); ok {
		t.Error("unexpected definition for nonexistent field")
	}
}
