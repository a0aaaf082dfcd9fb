// internal/server/handlers/respond.go

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/phuslu/log"
)

// errorResponse is the error body for every non-2xx response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondWithJSON writes payload as a JSON response body.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes a JSON error body. Server errors carry the
// underlying message for diagnostics and get logged; client errors do
// not.
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	body := errorResponse{Error: message}
	if err != nil && code >= 500 {
		body.Message = err.Error()
		log.Error().Err(err).Int("code", code).Str("error", message).Msg("request failed")
	}
	respondWithJSON(w, code, body)
}
