// internal/server/handlers/suggest.go

package handlers

import (
	"net/http"
	"strings"
)

var suggestionSuffixes = []string{"news", "price", "today", "reddit"}

// SuggestHandler serves autocomplete suggestions. It always succeeds:
// an empty or missing query yields an empty array.
type SuggestHandler struct{}

// NewSuggestHandler creates a new suggestion handler
func NewSuggestHandler() *SuggestHandler {
	return &SuggestHandler{}
}

// Suggestions returns up to four completions for the query.
func (h *SuggestHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondWithJSON(w, http.StatusOK, []string{})
		return
	}

	suggestions := make([]string, 0, len(suggestionSuffixes))
	for _, suffix := range suggestionSuffixes {
		suggestions = append(suggestions, q+" "+suffix)
	}
	respondWithJSON(w, http.StatusOK, suggestions)
}
