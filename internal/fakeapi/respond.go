package fakeapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// envelope is the standard response shape of the backend.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code"`
}

// writeJSON writes data with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any, message string) {
	writeJSON(w, statusCode, envelope{Success: true, Message: message, Data: data, Code: statusCode})
}

// writeError writes a failed envelope. err, when set, is exposed in the
// error field the way the backend does it.
func writeError(w http.ResponseWriter, statusCode int, message string, err error) {
	if statusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", statusCode).Msg("Internal server error")
	}
	resp := envelope{Success: false, Message: message, Code: statusCode}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, statusCode, resp)
}
