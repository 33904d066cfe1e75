package backend_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"todocal/backend"
	"todocal/backend/fake"
	"todocal/internal/utils"
)

func TestMain(m *testing.M) {
	utils.GetLogger().SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newService(t *testing.T) (*fake.Server, *backend.TodoService) {
	t.Helper()
	srv := fake.NewServer()
	t.Cleanup(srv.Close)
	api := backend.NewAPIClient(srv.URL(), 5*time.Second)
	return srv, backend.NewTodoService(api, "")
}

func TestNewTodoServiceDefaultCategory(t *testing.T) {
	api := backend.NewAPIClient("http://localhost:8080", 0)

	if got := backend.NewTodoService(api, "").DefaultCategory(); got != backend.DefaultCategory {
		t.Errorf("DefaultCategory() = %q, want %q", got, backend.DefaultCategory)
	}
	if got := backend.NewTodoService(api, "  ").DefaultCategory(); got != backend.DefaultCategory {
		t.Errorf("DefaultCategory() = %q for blank input", got)
	}
	if got := backend.NewTodoService(api, "업무").DefaultCategory(); got != "업무" {
		t.Errorf("DefaultCategory() = %q, want 업무", got)
	}
}

func TestGetTodosByFilterEndpoints(t *testing.T) {
	srv, svc := newService(t)
	srv.Seed(
		backend.Todo{ID: "1", Title: "open"},
		backend.Todo{ID: "2", Title: "done", Completed: true},
	)

	tests := []struct {
		filter  backend.Filter
		path    string
		wantLen int
	}{
		{backend.FilterAll, "GET /api/todos", 2},
		{backend.FilterIncomplete, "GET /api/todos/incomplete", 1},
		{backend.FilterCompleted, "GET /api/todos/completed", 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			srv.ResetRequests()
			todos := svc.GetTodosByFilter(context.Background(), tt.filter)
			if len(todos) != tt.wantLen {
				t.Errorf("got %d todos, want %d", len(todos), tt.wantLen)
			}
			reqs := srv.Requests()
			if len(reqs) != 1 || reqs[0] != tt.path {
				t.Errorf("requests = %v, want exactly [%s]", reqs, tt.path)
			}
		})
	}
}

func TestServiceDegradesOnFailure(t *testing.T) {
	srv, svc := newService(t)
	ctx := context.Background()
	srv.Close()

	if todos := svc.GetAllTodos(ctx); todos == nil || len(todos) != 0 {
		t.Errorf("GetAllTodos() = %v, want empty slice", todos)
	}
	if todos := svc.GetIncompleteTodos(ctx); todos == nil || len(todos) != 0 {
		t.Errorf("GetIncompleteTodos() = %v, want empty slice", todos)
	}
	if todos := svc.GetCompletedTodos(ctx); todos == nil || len(todos) != 0 {
		t.Errorf("GetCompletedTodos() = %v, want empty slice", todos)
	}
	if todos := svc.GetTodosByCategory(ctx, "업무"); todos == nil || len(todos) != 0 {
		t.Errorf("GetTodosByCategory() = %v, want empty slice", todos)
	}
	if cats := svc.GetAllCategories(ctx); cats == nil || len(cats) != 0 {
		t.Errorf("GetAllCategories() = %v, want empty slice", cats)
	}
	if todo := svc.GetTodo(ctx, "x"); todo != nil {
		t.Errorf("GetTodo() = %v, want nil", todo)
	}
	if todo := svc.AddTodo(ctx, "t", "", nil, ""); todo != nil {
		t.Errorf("AddTodo() = %v, want nil", todo)
	}
	if todo := svc.UpdateTodo(ctx, "x", "t", "", false, nil, ""); todo != nil {
		t.Errorf("UpdateTodo() = %v, want nil", todo)
	}
	if todo := svc.CompleteTodo(ctx, "x"); todo != nil {
		t.Errorf("CompleteTodo() = %v, want nil", todo)
	}
	if svc.DeleteTodo(ctx, "x") {
		t.Error("DeleteTodo() = true, want false")
	}
}

func TestServiceFailureLogging(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		wantLogs []string
	}{
		{"quiet by default", false, nil},
		{"verbose shows the failure and body", true, []string{"failed to fetch categories", "backend exploded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, svc := newService(t)
			srv.SetOverride(http.MethodGet, backend.TodosPath+"/categories", fake.Override{Status: http.StatusInternalServerError, Body: "backend exploded"})

			var buf bytes.Buffer
			logger := utils.GetLogger()
			logger.SetOutput(&buf)
			utils.SetVerboseMode(tt.verbose)
			t.Cleanup(func() {
				utils.SetVerboseMode(false)
				logger.SetOutput(io.Discard)
			})

			svc.GetAllCategories(context.Background())

			out := buf.String()
			if len(tt.wantLogs) == 0 && out != "" {
				t.Errorf("unexpected log output:\n%s", out)
			}
			for _, want := range tt.wantLogs {
				if !strings.Contains(out, want) {
					t.Errorf("log missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestServiceDegradesOnStatus(t *testing.T) {
	srv, svc := newService(t)
	ctx := context.Background()
	srv.SetOverride(http.MethodGet, backend.TodosPath, fake.Override{Status: http.StatusInternalServerError})
	srv.SetOverride(http.MethodPatch, backend.TodosPath+"/x/complete", fake.Override{Status: http.StatusNotFound})

	if todos := svc.GetAllTodos(ctx); len(todos) != 0 {
		t.Errorf("GetAllTodos() = %v, want empty", todos)
	}
	if todo := svc.CompleteTodo(ctx, "x"); todo != nil {
		t.Errorf("CompleteTodo() = %v, want nil", todo)
	}
}

func TestAddTodoDefaultsCategory(t *testing.T) {
	srv, svc := newService(t)
	ctx := context.Background()

	todo := svc.AddTodo(ctx, "Buy milk", "2L", backend.DueDatePtr("2024-01-05"), "")
	if todo == nil {
		t.Fatal("AddTodo() returned nil")
	}
	if todo.Category != backend.DefaultCategory {
		t.Errorf("Category = %q, want %q", todo.Category, backend.DefaultCategory)
	}
	if todo.DueDate != "2024-01-05" || todo.Description != "2L" {
		t.Errorf("AddTodo() = %+v", todo)
	}
	if todo.ID == "" || todo.CreatedAt == "" {
		t.Error("server-assigned fields should be passed through")
	}

	if stored := srv.Todos(); len(stored) != 1 || stored[0].ID != todo.ID {
		t.Errorf("stored todos = %v", stored)
	}
}

func TestUpdateTodoClearsDueDate(t *testing.T) {
	srv, svc := newService(t)
	srv.Seed(backend.Todo{ID: "e1", Title: "Old", DueDate: "2024-02-01", Category: "업무"})

	todo := svc.UpdateTodo(context.Background(), "e1", "New", "desc", true, backend.DueDatePtr(""), "")
	if todo == nil {
		t.Fatal("UpdateTodo() returned nil")
	}
	if todo.DueDate != "" {
		t.Errorf("DueDate = %q, want cleared", todo.DueDate)
	}
	if !todo.Completed || todo.Title != "New" || todo.Description != "desc" {
		t.Errorf("UpdateTodo() = %+v", todo)
	}
	if todo.Category != backend.DefaultCategory {
		t.Errorf("Category = %q, want default for empty input", todo.Category)
	}
}

func TestDeleteTodoOnlySucceedsOn204(t *testing.T) {
	srv, svc := newService(t)
	srv.Seed(backend.Todo{ID: "d1", Title: "gone"})
	ctx := context.Background()

	if !svc.DeleteTodo(ctx, "d1") {
		t.Fatal("DeleteTodo() = false for an existing todo")
	}
	if svc.DeleteTodo(ctx, "d1") {
		t.Error("DeleteTodo() = true for a missing todo")
	}

	srv.Seed(backend.Todo{ID: "d2", Title: "kept"})
	srv.SetOverride(http.MethodDelete, backend.TodosPath+"/d2", fake.Override{Status: http.StatusOK})
	if svc.DeleteTodo(ctx, "d2") {
		t.Error("DeleteTodo() = true for a 200 response")
	}
}

func TestDueDatePtr(t *testing.T) {
	if backend.DueDatePtr("") != nil || backend.DueDatePtr("   ") != nil {
		t.Error("blank due date should map to nil")
	}
	if p := backend.DueDatePtr(" 2024-01-05 "); p == nil || *p != "2024-01-05" {
		t.Errorf("DueDatePtr() = %v", p)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    backend.Filter
		wantErr bool
	}{
		{"", backend.FilterAll, false},
		{"all", backend.FilterAll, false},
		{"Incomplete", backend.FilterIncomplete, false},
		{" completed ", backend.FilterCompleted, false},
		{"done", backend.FilterAll, true},
	}

	for _, tt := range tests {
		got, err := backend.ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTodoString(t *testing.T) {
	todo := backend.Todo{Title: "Buy milk", Description: "2L", DueDate: "2024-01-05", Completed: true}
	want := "[✓] [일반] Buy milk - 2L (due: 2024-01-05)"
	if got := todo.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
