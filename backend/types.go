package backend

import (
	"context"
	"fmt"
	"strings"
)

const (
	// TodosPath is the collection resource every endpoint hangs off
	TodosPath = "/api/todos"

	// DefaultCategory is the general-category label the backend assigns
	// when a todo is created without one
	DefaultCategory = "일반"

	// DateLayout is the ISO calendar date layout used for due dates
	DateLayout = "2006-01-02"
)

// Todo is a single task record as served by the backend.
// ID, CreatedAt and UpdatedAt are assigned by the server and passed through untouched.
type Todo struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
	DueDate     string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"` // YYYY-MM-DD, empty when there is no deadline
	Category    string `json:"category" yaml:"category"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   string `json:"updatedAt" yaml:"updatedAt"`
}

// HasDueDate reports whether the todo carries a deadline
func (t Todo) HasDueDate() bool {
	return t.DueDate != ""
}

// CategoryOrDefault returns the category, falling back to the general label
func (t Todo) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// String returns a one-line summary, e.g. "[✓] [일반] Buy milk - 2L (due: 2024-01-05)"
func (t Todo) String() string {
	mark := " "
	if t.Completed {
		mark = "✓"
	}
	due := ""
	if t.HasDueDate() {
		due = fmt.Sprintf(" (due: %s)", t.DueDate)
	}
	return fmt.Sprintf("[%s] [%s] %s - %s%s", mark, t.CategoryOrDefault(), t.Title, t.Description, due)
}

// CreateTodoRequest is the POST body for creating a todo.
// DueDate is a pointer so that "no deadline" is sent as an explicit null.
type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Category    string  `json:"category"`
}

// UpdateTodoRequest is the PUT body for replacing a todo's editable fields
type UpdateTodoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"dueDate"`
	Category    string  `json:"category"`
}

// DueDatePtr converts an input value into the request form: empty means null
func DueDatePtr(dueDate string) *string {
	dueDate = strings.TrimSpace(dueDate)
	if dueDate == "" {
		return nil
	}
	return &dueDate
}

// Filter selects a subset of the todo collection
type Filter string

const (
	FilterAll        Filter = "all"
	FilterIncomplete Filter = "incomplete"
	FilterCompleted  Filter = "completed"
)

// Filters lists every filter in display order
var Filters = []Filter{FilterAll, FilterIncomplete, FilterCompleted}

// Endpoint returns the list endpoint of the filter, relative to the collection URL
func (f Filter) Endpoint() string {
	switch f {
	case FilterIncomplete:
		return "/incomplete"
	case FilterCompleted:
		return "/completed"
	default:
		return ""
	}
}

// ParseFilter converts a user supplied name into a Filter
func ParseFilter(name string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(name))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterIncomplete:
		return FilterIncomplete, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (valid: all, incomplete, completed)", name)
	}
}

// TodoManager is the degraded, never-failing view of the backend the UI works against.
// Failures are logged and turned into empty slices, nil todos or false.
type TodoManager interface {
	GetAllTodos(ctx context.Context) []Todo
	GetIncompleteTodos(ctx context.Context) []Todo
	GetCompletedTodos(ctx context.Context) []Todo
	GetTodosByFilter(ctx context.Context, filter Filter) []Todo
	GetTodosByCategory(ctx context.Context, category string) []Todo
	GetAllCategories(ctx context.Context) []string
	GetTodo(ctx context.Context, id string) *Todo
	AddTodo(ctx context.Context, title, description string, dueDate *string, category string) *Todo
	UpdateTodo(ctx context.Context, id, title, description string, completed bool, dueDate *string, category string) *Todo
	CompleteTodo(ctx context.Context, id string) *Todo
	DeleteTodo(ctx context.Context, id string) bool
}
