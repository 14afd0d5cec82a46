package api

import (
	"errors"
	"fmt"
)

// TransportError wraps DNS/connection/timeout failures: the request never
// produced an HTTP response.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Message is the server-provided
// `{message}` body when present, and is shown to the user verbatim.
type ServerError struct {
	Op         string
	URL        string
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s: server returned %d", e.Op, e.URL, e.StatusCode)
}

// IsAuthError reports whether err is a 401/403, i.e. the session cookie is
// missing or expired.
func IsAuthError(err error) bool {
	var se *ServerError
	if errors.As(err, &se) {
		return se.StatusCode == 401 || se.StatusCode == 403
	}
	return false
}
