package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for every terminal request failure. Status is the HTTP
// status of the response, or 0 when no candidate produced a response.
type APIError struct {
	Status   int
	Endpoint string
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d, endpoint %s)", e.Message, e.Status, e.Endpoint)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsNetwork reports whether the request never reached a responding server.
func (e *APIError) IsNetwork() bool { return e.Status == 0 }

// IsNotFound reports whether err is an APIError carrying a 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// StatusOf returns the status carried by err, or -1 when err is not an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

func newStatusError(status int, endpoint string, body []byte) *APIError {
	return &APIError{Status: status, Endpoint: endpoint, Message: errorMessage(status, body)}
}

func newNetworkError(endpoint string, cause error) *APIError {
	msg := "network error: no candidate base URLs"
	if cause != nil {
		msg = "network error: " + cause.Error()
	}
	return &APIError{Status: 0, Endpoint: endpoint, Message: msg, Err: cause}
}

// errorMessage prefers a JSON body's "error" field, then the raw body text,
// then a generic "HTTP <status>".
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
