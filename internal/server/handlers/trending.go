// internal/server/handlers/trending.go

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/adapter/storage"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/service/trending"
)

const defaultListingLimit = 10

// WeeklySearches serves the recorded-search rollup for the weekly
// listing. Nil when no database is configured.
type WeeklySearches interface {
	TopSince(ctx context.Context, since time.Time, limit int) ([]storage.TopSearch, error)
}

// TrendingHandler handles the listing endpoints. These have their own
// simplified generation logic and do not touch the analysis aggregator.
type TrendingHandler struct {
	generator *trending.Generator
	searches  WeeklySearches // optional
}

// NewTrendingHandler creates a new trending handler
func NewTrendingHandler(generator *trending.Generator, searches WeeklySearches) *TrendingHandler {
	return &TrendingHandler{generator: generator, searches: searches}
}

// Trending returns today's trending searches.
func (h *TrendingHandler) Trending(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.generator.Daily(listingLimit(r)))
}

// TopTrendsWeekly returns the week's top trends, preferring topics users
// actually analyzed when a search log is configured.
func (h *TrendingHandler) TopTrendsWeekly(w http.ResponseWriter, r *http.Request) {
	limit := listingLimit(r)

	if h.searches != nil {
		since := time.Now().AddDate(0, 0, -7)
		top, err := h.searches.TopSince(r.Context(), since, limit)
		if err != nil {
			log.Warn().Err(err).Msg("weekly search rollup unavailable, using generated listing")
		}
		if err == nil && len(top) > 0 {
			respondWithJSON(w, http.StatusOK, weeklyFromSearches(top))
			return
		}
	}

	respondWithJSON(w, http.StatusOK, h.generator.Weekly(limit))
}

// GlobalTrending returns the merged multi-platform listing.
func (h *TrendingHandler) GlobalTrending(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.generator.Global(r.Context(), 15))
}

func weeklyFromSearches(top []storage.TopSearch) []trending.Summary {
	items := make([]trending.Summary, 0, len(top))
	for i, ts := range top {
		items = append(items, trending.Summary{
			ID:       uuid.NewString(),
			Topic:    ts.Topic,
			Rank:     i + 1,
			Score:    ts.Searches,
			Category: ts.LastStatus,
			Platform: "search",
		})
	}
	return items
}

func listingLimit(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			return limit
		}
	}
	return defaultListingLimit
}
