package backend

import (
	"fmt"
	"io"
	"net/http"
)

// ErrorKind says at which stage a backend call broke down
type ErrorKind int

const (
	// KindStatus is a response outside the accepted status range
	KindStatus ErrorKind = iota
	// KindTransport is a request that never produced a response
	KindTransport
	// KindDecode is a response whose body is not the expected JSON
	KindDecode
)

// BackendError is a failed call against the todo REST backend.
// StatusCode is 0 unless Kind is KindStatus.
type BackendError struct {
	Kind       ErrorKind
	Operation  string // e.g. "GetAllTodos", "DeleteTodo"
	StatusCode int
	TodoID     string
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	target := e.Operation
	if e.TodoID != "" {
		target = fmt.Sprintf("%s(%s)", e.Operation, e.TodoID)
	}

	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s failed with status %d: %s", target, e.StatusCode, http.StatusText(e.StatusCode))
	case KindDecode:
		return fmt.Sprintf("%s: malformed response: %v", target, e.Err)
	default:
		return fmt.Sprintf("%s failed: %v", target, e.Err)
	}
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) IsNotFound() bool {
	return e.Kind == KindStatus && e.StatusCode == http.StatusNotFound
}

// IsBadRequest reports a 400, the backend's answer to an invalid payload
func (e *BackendError) IsBadRequest() bool {
	return e.Kind == KindStatus && e.StatusCode == http.StatusBadRequest
}

func (e *BackendError) IsServerError() bool {
	return e.Kind == KindStatus && e.StatusCode >= 500 && e.StatusCode < 600
}

// IsUnreachable reports a call that got no response at all
func (e *BackendError) IsUnreachable() bool {
	return e.Kind == KindTransport
}

// statusError drains the response body into the error for debugging
func statusError(operation, id string, resp *http.Response) *BackendError {
	body, _ := io.ReadAll(resp.Body)
	return &BackendError{
		Kind:       KindStatus,
		Operation:  operation,
		StatusCode: resp.StatusCode,
		TodoID:     id,
		Body:       string(body),
	}
}

func transportError(operation, id string, err error) *BackendError {
	return &BackendError{Kind: KindTransport, Operation: operation, TodoID: id, Err: err}
}

func decodeError(operation, id string, err error) *BackendError {
	return &BackendError{Kind: KindDecode, Operation: operation, TodoID: id, Err: err}
}
