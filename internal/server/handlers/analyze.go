// internal/server/handlers/analyze.go

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

const maxTopicLength = 100

// Analyzer is the aggregation contract the analyze endpoint depends on.
type Analyzer interface {
	Analyze(ctx context.Context, topic string) (*trend.AnalysisResult, error)
}

// AnalysisHandler handles topic analysis requests
type AnalysisHandler struct {
	aggregator Analyzer
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(aggregator Analyzer) *AnalysisHandler {
	return &AnalysisHandler{aggregator: aggregator}
}

type analyzeRequest struct {
	Topic string `json:"topic"`
}

// Analyze validates the topic and returns the assembled analysis.
// Validation lives here, not in the aggregator.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		respondWithError(w, http.StatusBadRequest, "Topic is required", nil)
		return
	}
	if utf8.RuneCountInString(topic) > maxTopicLength {
		respondWithError(w, http.StatusBadRequest, "Topic must be 100 characters or fewer", nil)
		return
	}

	result, err := h.aggregator.Analyze(r.Context(), topic)
	if err != nil {
		// Adapters absorb their own failures, so this is the defensive
		// last resort, not a primary path.
		respondWithError(w, http.StatusInternalServerError, "Failed to analyze topic", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
