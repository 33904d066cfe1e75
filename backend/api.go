package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIClient handles HTTP communication with the todo REST backend.
// Every call is a single attempt: there are no retries and no backoff.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the backend at baseURL (e.g. http://localhost:8080).
// A zero timeout leaves requests unbounded.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/") + TodosPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the collection URL requests are built from
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request, JSON-encoding body when present
func (c *APIClient) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// ListTodos fetches a todo collection from endpoint (relative to the collection URL).
// A body that is valid JSON but not an array yields an empty slice.
func (c *APIClient) ListTodos(ctx context.Context, operation, endpoint string) ([]Todo, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, transportError(operation, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(operation, "", resp)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, decodeError(operation, "", err)
	}

	if !isJSONArray(raw) {
		return []Todo{}, nil
	}

	todos := []Todo{}
	if err := json.Unmarshal(raw, &todos); err != nil {
		return nil, decodeError(operation, "", err)
	}

	return todos, nil
}

// GetCategories fetches the distinct category labels
func (c *APIClient) GetCategories(ctx context.Context) ([]string, error) {
	const operation = "GetAllCategories"

	resp, err := c.doRequest(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, transportError(operation, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(operation, "", resp)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, decodeError(operation, "", err)
	}

	if !isJSONArray(raw) {
		return []string{}, nil
	}

	categories := []string{}
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, decodeError(operation, "", err)
	}

	return categories, nil
}

// GetTodo retrieves a single todo by ID
func (c *APIClient) GetTodo(ctx context.Context, id string) (*Todo, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, transportError("GetTodo", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeTodo("GetTodo", id, resp)
}

// CreateTodo creates a new todo and returns the server's record of it
func (c *APIClient) CreateTodo(ctx context.Context, req CreateTodoRequest) (*Todo, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "", req)
	if err != nil {
		return nil, transportError("AddTodo", "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeTodo("AddTodo", "", resp)
}

// UpdateTodo replaces the editable fields of a todo
func (c *APIClient) UpdateTodo(ctx context.Context, id string, req UpdateTodoRequest) (*Todo, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/"+url.PathEscape(id), req)
	if err != nil {
		return nil, transportError("UpdateTodo", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeTodo("UpdateTodo", id, resp)
}

// CompleteTodo marks a todo as completed
func (c *APIClient) CompleteTodo(ctx context.Context, id string) (*Todo, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, "/"+url.PathEscape(id)+"/complete", nil)
	if err != nil {
		return nil, transportError("CompleteTodo", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeTodo("CompleteTodo", id, resp)
}

// DeleteTodo deletes a todo. Only 204 No Content counts as success.
func (c *APIClient) DeleteTodo(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/"+url.PathEscape(id), nil)
	if err != nil {
		return transportError("DeleteTodo", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return statusError("DeleteTodo", id, resp)
	}

	return nil
}

// decodeTodo reads a single todo object from a successful response
func decodeTodo(operation, id string, resp *http.Response) (*Todo, error) {
	if !isSuccess(resp.StatusCode) {
		return nil, statusError(operation, id, resp)
	}

	var todo Todo
	if err := json.NewDecoder(resp.Body).Decode(&todo); err != nil {
		return nil, decodeError(operation, id, err)
	}

	return &todo, nil
}

// isJSONArray reports whether raw holds a JSON array
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// CategoryPath returns the endpoint listing todos of one category
func CategoryPath(category string) string {
	return "/category/" + url.PathEscape(category)
}
