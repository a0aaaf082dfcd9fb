// internal/service/source/synthetic.go

package source

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

// relatedSuffixes builds fallback related queries, in this fixed order.
var relatedSuffixes = []string{"news", "today", "price", "reddit", "stock", "review"}

// curatedSeries holds hand-picked fallback timelines for topics the
// dashboard gets asked about constantly. Checked before the seeded path.
var curatedSeries = map[string][]int{
	"bitcoin":  {45, 52, 48, 61, 70, 78, 85},
	"ai":       {62, 64, 68, 71, 75, 79, 83},
	"crypto":   {40, 43, 41, 47, 52, 58, 63},
	"tesla":    {55, 51, 49, 50, 48, 46, 44},
	"ethereum": {38, 40, 42, 41, 44, 47, 49},
}

// Synthetic generates deterministic substitute data for a topic. The seed
// is the byte sum of the lower-cased trimmed topic, so repeated calls for
// the same unknown topic always produce the same series.
type Synthetic struct {
	now func() time.Time
}

// NewSynthetic returns a generator labeling timelines against the
// current date.
func NewSynthetic() *Synthetic {
	return &Synthetic{now: time.Now}
}

func seedFor(topic string) int64 {
	var seed int64
	for _, b := range []byte(strings.ToLower(strings.TrimSpace(topic))) {
		seed += int64(b)
	}
	return seed
}

// Timeline returns a 7-point series labeled with the short weekday names
// of the last seven days ending today. Known topics get their curated
// series; anything else gets a seeded pseudo-random one with a mild
// drift, clamped to [0, 100].
func (s *Synthetic) Timeline(topic string) trend.Timeline {
	key := strings.ToLower(strings.TrimSpace(topic))
	if values, ok := curatedSeries[key]; ok {
		return s.label(values)
	}

	seed := seedFor(topic)
	r := rand.New(rand.NewSource(seed))
	base := 25 + r.Intn(31)
	drift := int(seed%7) - 2

	values := make([]int, 7)
	for i := range values {
		v := base + drift*i + r.Intn(17) - 8
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		values[i] = v
	}
	return s.label(values)
}

func (s *Synthetic) label(values []int) trend.Timeline {
	tl := make(trend.Timeline, len(values))
	today := s.now()
	for i, v := range values {
		day := today.AddDate(0, 0, i-len(values)+1)
		tl[i] = trend.InterestPoint{Date: day.Format("Mon"), Value: v}
	}
	return tl
}

// RelatedQueries returns suffix-built related queries for a topic.
func (s *Synthetic) RelatedQueries(topic string) []string {
	topic = strings.TrimSpace(topic)
	queries := make([]string, 0, 5)
	for _, suffix := range relatedSuffixes[:5] {
		queries = append(queries, topic+" "+suffix)
	}
	return queries
}

// Posts returns three fixed-shape substitute posts for a topic.
func (s *Synthetic) Posts(topic string) []trend.SourcePost {
	topic = strings.TrimSpace(topic)
	return []trend.SourcePost{
		{
			Title:     fmt.Sprintf("What's everyone's take on %s lately?", topic),
			Subreddit: "AskReddit",
			Score:     1240,
			URL:       "https://www.reddit.com/r/AskReddit",
		},
		{
			Title:     fmt.Sprintf("%s is showing up everywhere this week", topic),
			Subreddit: "trending",
			Score:     860,
			URL:       "https://www.reddit.com/r/trending",
		},
		{
			Title:     fmt.Sprintf("A beginner's guide to %s", topic),
			Subreddit: "explainlikeimfive",
			Score:     495,
			URL:       "https://www.reddit.com/r/explainlikeimfive",
		},
	}
}
