package errors

import (
	"encoding/json"
	"net/http"
)

// DefaultMessage is reported when a failure carries no usable message.
const DefaultMessage = "An error occurred"

// ClassifyStatus maps an HTTP status code to a Category.
func ClassifyStatus(statusCode int) Category {
	switch {
	case statusCode == http.StatusUnauthorized:
		return Authentication
	case statusCode >= 400 && statusCode < 500:
		return Client
	default:
		return Server
	}
}

// ExtractMessage returns the top-level "message" string of a JSON body.
// Bodies that are empty, not JSON, or whose message is missing, empty or not
// a string yield DefaultMessage.
func ExtractMessage(body []byte) string {
	if len(body) == 0 {
		return DefaultMessage
	}
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return DefaultMessage
	}
	var msg string
	if err := json.Unmarshal(payload.Message, &msg); err != nil || msg == "" {
		return DefaultMessage
	}
	return msg
}

// NewHTTPError builds a classified error for a non-2xx response.
func NewHTTPError(method, url string, statusCode int, body []byte) *HTTPError {
	return &HTTPError{
		Category:   ClassifyStatus(statusCode),
		StatusCode: statusCode,
		Message:    ExtractMessage(body),
		Body:       body,
		Method:     method,
		URL:        url,
	}
}
