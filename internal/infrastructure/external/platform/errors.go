package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnknownUserType is returned for dev token requests outside the known user types
var ErrUnknownUserType = errors.New("unknown user type")

// APIError is a non-2xx answer from the platform
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// HTTPStatus returns the platform's status code
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// newAPIError extracts the platform's message from an error body,
// falling back to the HTTP status text.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		message = strings.TrimSpace(payload.Message)
		if message == "" {
			message = strings.TrimSpace(payload.Error)
		}
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "unexpected platform response"
	}
	return &APIError{StatusCode: status, Message: message}
}

// StatusCode returns the platform status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether the platform answered 404
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the platform rejected the caller's token
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
