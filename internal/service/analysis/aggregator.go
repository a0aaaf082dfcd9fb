// internal/service/analysis/aggregator.go

package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

const relatedTopicCount = 4

// GoogleSource provides search-interest data for a topic.
type GoogleSource interface {
	Fetch(ctx context.Context, topic string) trend.GoogleData
}

// RedditSource provides community data for a topic.
type RedditSource interface {
	Fetch(ctx context.Context, topic string) trend.RedditData
}

// Summarizer produces the natural-language summary for an analysis.
type Summarizer interface {
	Summarize(ctx context.Context, topic string, status trend.Status, google trend.GoogleData, reddit trend.RedditData) string
}

// SearchLog records analyzed topics for the weekly rollup. Recording
// happens off the response path; failures are logged, never surfaced.
type SearchLog interface {
	Record(ctx context.Context, topic string, status trend.Status) error
}

// AnalyzedEvent is published after each completed analysis.
type AnalyzedEvent struct {
	ID         string       `json:"id"`
	Topic      string       `json:"topic"`
	Status     trend.Status `json:"status"`
	AnalyzedAt time.Time    `json:"analyzed_at"`
}

// Publisher pushes analysis events to interested consumers.
type Publisher interface {
	Publish(event AnalyzedEvent) error
}

// Aggregator orchestrates the source adapters into one AnalysisResult.
// The adapters absorb their own failures, so Analyze cannot fail under
// normal operation; the error return is a last-resort safety net.
type Aggregator struct {
	google     GoogleSource
	reddit     RedditSource
	summarizer Summarizer
	searches   SearchLog // optional
	events     Publisher // optional
}

// NewAggregator wires the aggregator. searches and events may be nil,
// which disables persistence and event publication respectively.
func NewAggregator(google GoogleSource, reddit RedditSource, summarizer Summarizer, searches SearchLog, events Publisher) *Aggregator {
	return &Aggregator{
		google:     google,
		reddit:     reddit,
		summarizer: summarizer,
		searches:   searches,
		events:     events,
	}
}

// Analyze builds the full analysis for a topic. Input validation is the
// HTTP surface's job; the topic arrives trimmed and bounded.
//
// Google and Reddit are fetched concurrently with join semantics: a stall
// in one does not cancel the other. The summary call is sequential since
// its prompt embeds both results.
func (a *Aggregator) Analyze(ctx context.Context, topic string) (*trend.AnalysisResult, error) {
	var (
		googleData trend.GoogleData
		redditData trend.RedditData
		wg         sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		googleData = a.google.Fetch(ctx, topic)
	}()
	go func() {
		defer wg.Done()
		redditData = a.reddit.Fetch(ctx, topic)
	}()
	wg.Wait()

	status := trend.Classify(googleData.InterestOverTime)
	summary := a.summarizer.Summarize(ctx, topic, status, googleData, redditData)

	related := make([]string, 0, relatedTopicCount)
	for _, q := range googleData.RelatedQueries {
		if len(related) == relatedTopicCount {
			break
		}
		related = append(related, q)
	}

	result := &trend.AnalysisResult{
		Topic:   topic,
		Status:  status,
		Summary: summary,
		Sources: trend.Sources{
			Google:  googleData,
			Reddit:  redditData,
			Twitter: nil,
		},
		RelatedTopics: related,
	}

	a.recordAndPublish(topic, status)

	return result, nil
}

// recordAndPublish runs off the response path: the caller never waits on
// the search log, and a dead event bus only costs a warning.
func (a *Aggregator) recordAndPublish(topic string, status trend.Status) {
	if a.searches != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.searches.Record(ctx, topic, status); err != nil {
				log.Warn().Err(err).Str("topic", topic).Msg("failed to record search")
			}
		}()
	}

	if a.events != nil {
		event := AnalyzedEvent{
			ID:         uuid.NewString(),
			Topic:      topic,
			Status:     status,
			AnalyzedAt: time.Now(),
		}
		if err := a.events.Publish(event); err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("failed to publish analysis event")
		}
	}
}
