package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport failures: DNS, refused connections, timeouts, bad JSON.
	ErrUnavailable  = errors.New("backend unavailable")
	ErrNotFound     = errors.New("backend resource not found")
	ErrUnauthorized = errors.New("backend rejected credentials")
)

// APIError is a rejection returned by the backend. Message is the server's own text
// and is shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
	Op         string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// UserMessage returns the text that should reach the user for err, and whether
// the error came from the backend itself.
func UserMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
