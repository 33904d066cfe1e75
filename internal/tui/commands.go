package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"todocal/backend"
)

// listLoadedMsg carries the list fetch issued as generation gen
type listLoadedMsg struct {
	gen   int
	todos []backend.Todo
}

// calendarLoadedMsg carries the calendar fetch issued as generation gen
type calendarLoadedMsg struct {
	gen   int
	todos []backend.Todo
}

type categoriesLoadedMsg struct {
	categories []string
}

// mutation names the write operation a mutationMsg reports on
type mutation int

const (
	mutationAdd mutation = iota
	mutationUpdate
	mutationComplete
	mutationDelete
)

// mutationMsg reports whether a write succeeded
type mutationMsg struct {
	op mutation
	ok bool
}

func fetchListCmd(ctx context.Context, mgr backend.TodoManager, gen int, filter backend.Filter, category string) tea.Cmd {
	return func() tea.Msg {
		var todos []backend.Todo
		if category != "" {
			todos = mgr.GetTodosByCategory(ctx, category)
		} else {
			todos = mgr.GetTodosByFilter(ctx, filter)
		}
		return listLoadedMsg{gen: gen, todos: todos}
	}
}

// fetchCalendarCmd always loads the whole collection; the list filter does
// not apply to the calendar
func fetchCalendarCmd(ctx context.Context, mgr backend.TodoManager, gen int) tea.Cmd {
	return func() tea.Msg {
		return calendarLoadedMsg{gen: gen, todos: mgr.GetAllTodos(ctx)}
	}
}

func fetchCategoriesCmd(ctx context.Context, mgr backend.TodoManager) tea.Cmd {
	return func() tea.Msg {
		return categoriesLoadedMsg{categories: mgr.GetAllCategories(ctx)}
	}
}

func addTodoCmd(ctx context.Context, mgr backend.TodoManager, title, description, dueDate, category string) tea.Cmd {
	return func() tea.Msg {
		todo := mgr.AddTodo(ctx, title, description, backend.DueDatePtr(dueDate), category)
		return mutationMsg{op: mutationAdd, ok: todo != nil}
	}
}

func updateTodoCmd(ctx context.Context, mgr backend.TodoManager, id, title, description string, completed bool, dueDate, category string) tea.Cmd {
	return func() tea.Msg {
		todo := mgr.UpdateTodo(ctx, id, title, description, completed, backend.DueDatePtr(dueDate), category)
		return mutationMsg{op: mutationUpdate, ok: todo != nil}
	}
}

func completeTodoCmd(ctx context.Context, mgr backend.TodoManager, id string) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{op: mutationComplete, ok: mgr.CompleteTodo(ctx, id) != nil}
	}
}

func deleteTodoCmd(ctx context.Context, mgr backend.TodoManager, id string) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{op: mutationDelete, ok: mgr.DeleteTodo(ctx, id)}
	}
}
