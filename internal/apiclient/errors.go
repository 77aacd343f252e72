package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorBody is the backend error envelope.
type ErrorBody struct {
	Error string `json:"error"`
}

// APIError is returned for every non-success HTTP status.
type APIError struct {
	Status  int
	Message string
	// Body is nil when the response did not carry a JSON error envelope.
	Body *ErrorBody
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, raw []byte) *APIError {
	body := parseErrorBody(raw)
	msg := fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	if body != nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{Status: status, Message: msg, Body: body}
}

// parseErrorBody tolerates malformed or non-object bodies by returning nil.
func parseErrorBody(raw []byte) *ErrorBody {
	if len(raw) == 0 {
		return nil
	}
	var body ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return &body
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
