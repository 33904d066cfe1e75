package backend

import (
	"context"
	"errors"
	"strings"

	"todocal/internal/utils"
)

// TodoService implements TodoManager on top of APIClient.
// It never returns an error: every transport, status or decoding fault is
// logged and degraded to an empty slice, a nil todo or false.
type TodoService struct {
	api             *APIClient
	defaultCategory string
}

var _ TodoManager = (*TodoService)(nil)

// NewTodoService wraps api. An empty defaultCategory falls back to DefaultCategory.
func NewTodoService(api *APIClient, defaultCategory string) *TodoService {
	if strings.TrimSpace(defaultCategory) == "" {
		defaultCategory = DefaultCategory
	}
	return &TodoService{
		api:             api,
		defaultCategory: defaultCategory,
	}
}

// API exposes the underlying client for callers that need the error detail
func (s *TodoService) API() *APIClient {
	return s.api
}

// DefaultCategory returns the label used when a category is left empty
func (s *TodoService) DefaultCategory() string {
	return s.defaultCategory
}

func (s *TodoService) list(ctx context.Context, operation, endpoint string) []Todo {
	todos, err := s.api.ListTodos(ctx, operation, endpoint)
	if err != nil {
		logFailure("fetch todos", err)
		return []Todo{}
	}
	utils.Debugf("%s returned %d todos", operation, len(todos))
	return todos
}

// GetAllTodos fetches every todo
func (s *TodoService) GetAllTodos(ctx context.Context) []Todo {
	return s.list(ctx, "GetAllTodos", FilterAll.Endpoint())
}

// GetIncompleteTodos fetches todos that are not completed yet
func (s *TodoService) GetIncompleteTodos(ctx context.Context) []Todo {
	return s.list(ctx, "GetIncompleteTodos", FilterIncomplete.Endpoint())
}

// GetCompletedTodos fetches completed todos
func (s *TodoService) GetCompletedTodos(ctx context.Context) []Todo {
	return s.list(ctx, "GetCompletedTodos", FilterCompleted.Endpoint())
}

// GetTodosByFilter dispatches to the endpoint matching filter
func (s *TodoService) GetTodosByFilter(ctx context.Context, filter Filter) []Todo {
	switch filter {
	case FilterIncomplete:
		return s.GetIncompleteTodos(ctx)
	case FilterCompleted:
		return s.GetCompletedTodos(ctx)
	default:
		return s.GetAllTodos(ctx)
	}
}

// GetTodosByCategory fetches todos of one category
func (s *TodoService) GetTodosByCategory(ctx context.Context, category string) []Todo {
	return s.list(ctx, "GetTodosByCategory", CategoryPath(category))
}

// GetAllCategories fetches the distinct category labels
func (s *TodoService) GetAllCategories(ctx context.Context) []string {
	categories, err := s.api.GetCategories(ctx)
	if err != nil {
		logFailure("fetch categories", err)
		return []string{}
	}
	return categories
}

// GetTodo fetches a single todo, nil when it cannot be retrieved
func (s *TodoService) GetTodo(ctx context.Context, id string) *Todo {
	todo, err := s.api.GetTodo(ctx, id)
	if err != nil {
		logFailure("fetch todo "+id, err)
		return nil
	}
	return todo
}

// AddTodo creates a todo. An empty category is sent as the default label.
func (s *TodoService) AddTodo(ctx context.Context, title, description string, dueDate *string, category string) *Todo {
	req := CreateTodoRequest{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Category:    s.categoryOrDefault(category),
	}

	todo, err := s.api.CreateTodo(ctx, req)
	if err != nil {
		logFailure("add todo", err)
		return nil
	}
	utils.Debugf("added todo %s", todo.ID)
	return todo
}

// UpdateTodo replaces a todo's editable fields
func (s *TodoService) UpdateTodo(ctx context.Context, id, title, description string, completed bool, dueDate *string, category string) *Todo {
	req := UpdateTodoRequest{
		Title:       title,
		Description: description,
		Completed:   completed,
		DueDate:     dueDate,
		Category:    s.categoryOrDefault(category),
	}

	todo, err := s.api.UpdateTodo(ctx, id, req)
	if err != nil {
		logFailure("update todo", err)
		return nil
	}
	utils.Debugf("updated todo %s", id)
	return todo
}

// CompleteTodo marks a todo as completed
func (s *TodoService) CompleteTodo(ctx context.Context, id string) *Todo {
	todo, err := s.api.CompleteTodo(ctx, id)
	if err != nil {
		logFailure("complete todo", err)
		return nil
	}
	utils.Debugf("completed todo %s", id)
	return todo
}

// DeleteTodo deletes a todo, true only when the backend answered 204
func (s *TodoService) DeleteTodo(ctx context.Context, id string) bool {
	if err := s.api.DeleteTodo(ctx, id); err != nil {
		logFailure("delete todo", err)
		return false
	}
	utils.Debugf("deleted todo %s", id)
	return true
}

func (s *TodoService) categoryOrDefault(category string) string {
	if strings.TrimSpace(category) == "" {
		return s.defaultCategory
	}
	return category
}

// logFailure records a degraded call at debug level; verbose runs also get
// the response body of a rejected request
func logFailure(what string, err error) {
	utils.Debugf("failed to %s: %v", what, err)

	var be *BackendError
	if utils.GetLogger().IsVerbose() && errors.As(err, &be) && be.Body != "" {
		utils.Debugf("%s response body: %s", be.Operation, strings.TrimSpace(be.Body))
	}
}
