// Package fake provides an in-memory todo REST backend for tests.
// It follows the same contract as the real server: 201 on create,
// 204 on delete, 404 for unknown ids and 400 for a missing title.
package fake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"

	"todocal/backend"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

// Override forces a canned response for one method and path
type Override struct {
	Status int
	Body   string
}

// Server is an httptest server holding todos in insertion order
type Server struct {
	mu        sync.Mutex
	closeOnce sync.Once
	srv       *httptest.Server
	order     []string
	todos     map[string]*backend.Todo
	requests  []string
	overrides map[string]Override

	// Now supplies createdAt/updatedAt timestamps
	Now func() time.Time
}

// NewServer starts a fake backend. Call Close when done.
func NewServer() *Server {
	s := &Server{
		todos:     make(map[string]*backend.Todo),
		overrides: make(map[string]Override),
		Now:       time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+backend.TodosPath, s.handleList(func(backend.Todo) bool { return true }))
	mux.HandleFunc("GET "+backend.TodosPath+"/incomplete", s.handleList(func(t backend.Todo) bool { return !t.Completed }))
	mux.HandleFunc("GET "+backend.TodosPath+"/completed", s.handleList(func(t backend.Todo) bool { return t.Completed }))
	mux.HandleFunc("GET "+backend.TodosPath+"/category/{category}", s.handleCategory)
	mux.HandleFunc("GET "+backend.TodosPath+"/categories", s.handleCategories)
	mux.HandleFunc("GET "+backend.TodosPath+"/{id}", s.handleGet)
	mux.HandleFunc("POST "+backend.TodosPath, s.handleCreate)
	mux.HandleFunc("PUT "+backend.TodosPath+"/{id}", s.handleUpdate)
	mux.HandleFunc("PATCH "+backend.TodosPath+"/{id}/complete", s.handleComplete)
	mux.HandleFunc("DELETE "+backend.TodosPath+"/{id}", s.handleDelete)

	s.srv = httptest.NewServer(s.record(mux))
	return s
}

// URL returns the base URL to hand to backend.NewAPIClient
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the server down. It is safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(s.srv.Close)
}

// Seed stores todos as-is, keeping the ids and timestamps they carry.
// Missing ids are generated.
func (s *Server) Seed(todos ...backend.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range todos {
		todo := t
		if todo.ID == "" {
			todo.ID = uuid.NewString()
		}
		if todo.Category == "" {
			todo.Category = backend.DefaultCategory
		}
		if _, exists := s.todos[todo.ID]; !exists {
			s.order = append(s.order, todo.ID)
		}
		s.todos[todo.ID] = &todo
	}
}

// Todos returns a snapshot of the stored todos in insertion order
func (s *Server) Todos() []backend.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(backend.Todo) bool { return true })
}

// Requests returns "METHOD /path" for every request received so far
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// ResetRequests clears the request log
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// SetOverride makes method+path answer with a fixed status and body
func (s *Server) SetOverride(method, path string, o Override) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = o
}

// ClearOverrides removes every canned response
func (s *Server) ClearOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]Override)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.EscapedPath()

		s.mu.Lock()
		s.requests = append(s.requests, key)
		o, overridden := s.overrides[key]
		s.mu.Unlock()

		if overridden {
			if o.Body != "" {
				w.Header().Set("Content-Type", "application/json")
			}
			w.WriteHeader(o.Status)
			_, _ = w.Write([]byte(o.Body))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) snapshot(keep func(backend.Todo) bool) []backend.Todo {
	out := []backend.Todo{}
	for _, id := range s.order {
		if t, ok := s.todos[id]; ok && keep(*t) {
			out = append(out, *t)
		}
	}
	return out
}

func (s *Server) handleList(keep func(backend.Todo) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		todos := s.snapshot(keep)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, todos)
	}
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	s.mu.Lock()
	todos := s.snapshot(func(t backend.Todo) bool { return t.Category == category })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	categories := []string{}
	for _, t := range s.snapshot(func(backend.Todo) bool { return true }) {
		if !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[r.PathValue("id")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req backend.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	dueDate := ""
	if req.DueDate != nil && *req.DueDate != "" {
		if _, err := time.Parse(backend.DateLayout, *req.DueDate); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		dueDate = *req.DueDate
	}

	category := req.Category
	if category == "" {
		category = backend.DefaultCategory
	}

	now := s.Now().Format(timestampLayout)
	todo := &backend.Todo{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.order = append(s.order, todo.ID)
	s.todos[todo.ID] = todo
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[r.PathValue("id")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	updated := *todo
	if v, ok := req["title"].(string); ok {
		updated.Title = v
	}
	if v, ok := req["description"].(string); ok {
		updated.Description = v
	}
	if v, ok := req["completed"].(bool); ok {
		updated.Completed = v
	}
	if v, ok := req["category"].(string); ok {
		updated.Category = v
	}
	if raw, present := req["dueDate"]; present {
		v, _ := raw.(string)
		if v != "" {
			if _, err := time.Parse(backend.DateLayout, v); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}
		// null or "" clears the deadline
		updated.DueDate = v
	}
	updated.UpdatedAt = s.Now().Format(timestampLayout)
	*todo = updated

	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[r.PathValue("id")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	todo.Completed = true
	todo.UpdatedAt = s.Now().Format(timestampLayout)
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("id")
	if _, ok := s.todos[id]; !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	delete(s.todos, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("fake backend: encode response: %v", err))
	}
}
