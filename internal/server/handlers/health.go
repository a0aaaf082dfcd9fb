// internal/server/handlers/health.go

package handlers

import (
	"net/http"
	"time"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/config"
)

// HealthHandler reports service liveness and which integrations are
// configured. Presence of configuration only, not live connectivity.
type HealthHandler struct {
	cfg config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

type healthResponse struct {
	Status       string          `json:"status"`
	Timestamp    string          `json:"timestamp"`
	Integrations map[string]bool `json:"integrations"`
}

// Health returns the health payload.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Integrations: map[string]bool{
			"openai": h.cfg.OpenAI.Configured(),
			"reddit": h.cfg.Reddit.Configured(),
		},
	})
}
