package types

import "encoding/json"

// ------------------------------
// Response Types
// ------------------------------

// Envelope is the standard body shape of every backend response.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    int             `json:"code"`
}

// PingResponse is returned by the health endpoint.
type PingResponse struct {
	Message string `json:"message"`
}
