package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/config"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

func openAIConfig(key, baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:  key,
		Model:   "gpt-4o-mini",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}
}

func TestSummarizeWithoutKeyUsesTemplate(t *testing.T) {
	s := NewSummarizer(openAIConfig("", "https://api.openai.com"))

	got := s.Summarize(context.Background(), "ai", trend.StatusRising, trend.GoogleData{}, trend.RedditData{})

	assert.Equal(t, fmt.Sprintf(NoKeyTemplate, "ai", trend.StatusRising), got)
}

func TestSummarizeFallsBackOnCallFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewSummarizer(openAIConfig("sk-test", srv.URL))
	got := s.Summarize(context.Background(), "bitcoin", trend.StatusExploding, trend.GoogleData{}, trend.RedditData{})

	assert.Equal(t, fmt.Sprintf(CallFailedTemplate, "bitcoin", trend.StatusExploding), got)
}

func TestSummarizeSubstitutesEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"   \n  "}}]}`))
	}))
	defer srv.Close()

	s := NewSummarizer(openAIConfig("sk-test", srv.URL))
	got := s.Summarize(context.Background(), "bitcoin", trend.StatusStable, trend.GoogleData{}, trend.RedditData{})

	assert.Equal(t, UnableMessage, got)
}

func TestSummarizeTrimsLiveResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"content":"\nSearch interest in bitcoin is surging.\n"}}]}`))
	}))
	defer srv.Close()

	s := NewSummarizer(openAIConfig("sk-test", srv.URL))
	got := s.Summarize(context.Background(), "bitcoin", trend.StatusExploding, trend.GoogleData{
		InterestOverTime: trend.Timeline{{Date: "Mon", Value: 10}},
		RelatedQueries:   []string{"bitcoin price"},
	}, trend.RedditData{})

	assert.Equal(t, "Search interest in bitcoin is surging.", got)
}
