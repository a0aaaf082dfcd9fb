package analysis

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/config"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/service/source"
)

type slowGoogle struct {
	delay time.Duration
	data  trend.GoogleData
}

func (s slowGoogle) Fetch(ctx context.Context, topic string) trend.GoogleData {
	time.Sleep(s.delay)
	return s.data
}

type slowReddit struct {
	delay time.Duration
	data  trend.RedditData
}

func (s slowReddit) Fetch(ctx context.Context, topic string) trend.RedditData {
	time.Sleep(s.delay)
	return s.data
}

type templateSummarizer struct{}

func (templateSummarizer) Summarize(ctx context.Context, topic string, status trend.Status, google trend.GoogleData, reddit trend.RedditData) string {
	return fmt.Sprintf("%s: %s", topic, status)
}

func TestAnalyzeFetchesSourcesConcurrently(t *testing.T) {
	agg := NewAggregator(
		slowGoogle{delay: 100 * time.Millisecond},
		slowReddit{delay: 100 * time.Millisecond},
		templateSummarizer{},
		nil, nil,
	)

	start := time.Now()
	_, err := agg.Analyze(context.Background(), "bitcoin")
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, 180*time.Millisecond, "google and reddit fetches should overlap")
}

func TestAnalyzeAssemblesResult(t *testing.T) {
	google := trend.GoogleData{
		InterestOverTime: trend.Timeline{
			{Date: "Mon", Value: 10}, {Date: "Tue", Value: 10}, {Date: "Wed", Value: 10},
			{Date: "Thu", Value: 10}, {Date: "Fri", Value: 80}, {Date: "Sat", Value: 90},
			{Date: "Sun", Value: 100},
		},
		RelatedQueries: []string{"a", "b", "c", "d", "e", "f"},
	}
	reddit := trend.RedditData{
		TopPosts:  []trend.SourcePost{{Title: "post", Subreddit: "sub", Score: 1, URL: "u"}},
		Sentiment: "Positive",
	}

	agg := NewAggregator(slowGoogle{data: google}, slowReddit{data: reddit}, templateSummarizer{}, nil, nil)

	result, err := agg.Analyze(context.Background(), "bitcoin")
	require.NoError(t, err)

	assert.Equal(t, "bitcoin", result.Topic)
	assert.Equal(t, trend.StatusExploding, result.Status)
	assert.Equal(t, "bitcoin: Exploding", result.Summary)
	assert.Equal(t, google, result.Sources.Google)
	assert.Equal(t, reddit, result.Sources.Reddit)
	assert.Nil(t, result.Sources.Twitter)
	assert.Equal(t, []string{"a", "b", "c", "d"}, result.RelatedTopics, "related topics are capped at four")
}

type recordingLog struct {
	mu     sync.Mutex
	topics []string
	done   chan struct{}
}

func (r *recordingLog) Record(ctx context.Context, topic string, status trend.Status) error {
	r.mu.Lock()
	r.topics = append(r.topics, topic)
	r.mu.Unlock()
	close(r.done)
	return nil
}

type recordingPublisher struct {
	events []AnalyzedEvent
}

func (r *recordingPublisher) Publish(event AnalyzedEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestAnalyzeRecordsAndPublishesOffPath(t *testing.T) {
	searches := &recordingLog{done: make(chan struct{})}
	events := &recordingPublisher{}

	agg := NewAggregator(slowGoogle{}, slowReddit{}, templateSummarizer{}, searches, events)

	_, err := agg.Analyze(context.Background(), "bitcoin")
	require.NoError(t, err)

	select {
	case <-searches.done:
	case <-time.After(time.Second):
		t.Fatal("search was never recorded")
	}

	require.Len(t, events.events, 1)
	assert.Equal(t, "bitcoin", events.events[0].Topic)
	assert.NotEmpty(t, events.events[0].ID)
}

// End-to-end over the real adapters with nothing configured: no AI key,
// no social credentials, trends provider unreachable.
func TestAnalyzeFullySyntheticScenario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	syn := source.NewSynthetic()
	google := source.NewGoogleAdapter(config.GoogleConfig{BaseURL: srv.URL, Timeout: time.Second}, nil, time.Minute, syn)
	reddit := source.NewRedditAdapter(config.RedditConfig{BaseURL: srv.URL, Timeout: time.Second}, nil, time.Minute, syn)
	summarizer := source.NewSummarizer(config.OpenAIConfig{BaseURL: srv.URL, Timeout: time.Second})

	agg := NewAggregator(google, reddit, summarizer, nil, nil)

	result, err := agg.Analyze(context.Background(), "ai")
	require.NoError(t, err)

	// The curated "ai" series climbs from the mid-60s to around 80, which
	// classifies as Rising.
	assert.Equal(t, trend.StatusRising, result.Status)
	assert.Equal(t, "Positive", result.Sources.Reddit.Sentiment)
	assert.Nil(t, result.Sources.Twitter)
	assert.Equal(t, fmt.Sprintf(source.NoKeyTemplate, "ai", trend.StatusRising), result.Summary)
	assert.Equal(t, []string{"ai news", "ai today", "ai price", "ai reddit"}, result.RelatedTopics)

	// Same unknown-provider state, same topic: identical payload shape and
	// identical synthetic values.
	again, err := agg.Analyze(context.Background(), "ai")
	require.NoError(t, err)
	assert.Equal(t, result.Sources.Google, again.Sources.Google)
}
