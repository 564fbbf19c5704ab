package api

import "fmt"

// APIError is returned by the client when the server answers with an
// error envelope. It keeps the HTTP status alongside the server's
// message so callers can branch on either.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}
