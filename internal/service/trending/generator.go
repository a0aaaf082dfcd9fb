// internal/service/trending/generator.go

package trending

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

// Summary is one entry in a trending listing.
type Summary struct {
	ID       string `json:"id"`
	Topic    string `json:"topic"`
	Rank     int    `json:"rank"`
	Score    int    `json:"score"`
	Category string `json:"category"`
	Platform string `json:"platform"`
	Change   int    `json:"change_pct"`
}

// curatedTopics feeds the simulated listings. Categories mirror what the
// dashboard filters on.
var curatedTopics = []struct {
	Topic    string
	Category string
}{
	{"Bitcoin", "Finance"},
	{"AI agents", "Technology"},
	{"Champions League", "Sports"},
	{"Electric vehicles", "Technology"},
	{"Ethereum", "Finance"},
	{"Climate summit", "News"},
	{"SpaceX launch", "Science"},
	{"Olympics", "Sports"},
	{"Quantum computing", "Science"},
	{"Streaming wars", "Entertainment"},
	{"Housing market", "Finance"},
	{"New iPhone", "Technology"},
	{"Taylor Swift tour", "Entertainment"},
	{"Nobel prize", "Science"},
	{"Elections", "News"},
}

// RedditFeed is the slice of the Reddit adapter the listings use. It can
// fail; the generator keeps its own fallback.
type RedditFeed interface {
	Popular(ctx context.Context, limit int) ([]trend.SourcePost, error)
}

// Generator produces the simplified listings behind the trending
// endpoints. Scores are seeded by the current date so a listing is
// stable for a day and rotates the next.
type Generator struct {
	twitter *TwitterClient // nil selects the mock path
	reddit  RedditFeed     // nil selects the mock path
	now     func() time.Time
}

// NewGenerator wires the generator. Both clients may be nil.
func NewGenerator(twitterClient *TwitterClient, redditFeed RedditFeed) *Generator {
	return &Generator{
		twitter: twitterClient,
		reddit:  redditFeed,
		now:     time.Now,
	}
}

func (g *Generator) dateSeed(salt int64) int64 {
	y, m, d := g.now().Date()
	return int64(y*10000+int(m)*100+d) + salt*1_000_003
}

// Daily returns today's simulated trending searches.
func (g *Generator) Daily(limit int) []Summary {
	return g.generate(g.dateSeed(1), "google", limit)
}

// Weekly returns this week's simulated top trends. The weekly handler
// prefers real recorded searches when a search log is configured and
// falls back to this.
func (g *Generator) Weekly(limit int) []Summary {
	y, week := g.now().ISOWeek()
	return g.generate(int64(y*100+week)+2_000_033, "google", limit)
}

func (g *Generator) generate(seed int64, platform string, limit int) []Summary {
	if limit <= 0 || limit > len(curatedTopics) {
		limit = len(curatedTopics)
	}

	r := rand.New(rand.NewSource(seed))
	order := r.Perm(len(curatedTopics))

	items := make([]Summary, 0, limit)
	for rank := 1; rank <= limit; rank++ {
		entry := curatedTopics[order[rank-1]]
		items = append(items, Summary{
			ID:       uuid.NewString(),
			Topic:    entry.Topic,
			Rank:     rank,
			Score:    9800 - rank*450 + r.Intn(300),
			Category: entry.Category,
			Platform: platform,
			Change:   r.Intn(161) - 40,
		})
	}
	return items
}

// Global merges simulated multi-platform presence: live Twitter and
// Reddit feeds when configured, mock entries otherwise, plus generated
// search trends. Ranks run across the merged list.
func (g *Generator) Global(ctx context.Context, limit int) []Summary {
	if limit <= 0 {
		limit = 15
	}
	perPlatform := limit / 3
	if perPlatform < 1 {
		perPlatform = 1
	}

	items := make([]Summary, 0, limit)
	items = append(items, g.twitterEntries(ctx, perPlatform)...)
	items = append(items, g.redditEntries(ctx, perPlatform)...)

	for _, s := range g.generate(g.dateSeed(3), "google", perPlatform) {
		items = append(items, s)
	}

	if len(items) > limit {
		items = items[:limit]
	}
	for i := range items {
		items[i].Rank = i + 1
	}
	return items
}

func (g *Generator) twitterEntries(ctx context.Context, limit int) []Summary {
	if g.twitter != nil {
		tweets, err := g.twitter.RecentPosts(ctx, "trending", limit)
		if err == nil && len(tweets) > 0 {
			items := make([]Summary, 0, limit)
			for i, tw := range tweets {
				if i == limit {
					break
				}
				items = append(items, Summary{
					ID:       tw.ID,
					Topic:    truncate(tw.Text, 60),
					Score:    tw.Score,
					Category: "Social",
					Platform: "twitter",
				})
			}
			return items
		}
		if err != nil {
			log.Warn().Err(err).Msg("twitter feed unavailable, using mock entries")
		}
	}
	return mockTwitterEntries(g.dateSeed(4), limit)
}

func (g *Generator) redditEntries(ctx context.Context, limit int) []Summary {
	if g.reddit != nil {
		posts, err := g.reddit.Popular(ctx, limit)
		if err == nil && len(posts) > 0 {
			items := make([]Summary, 0, limit)
			for i, p := range posts {
				if i == limit {
					break
				}
				items = append(items, Summary{
					ID:       uuid.NewString(),
					Topic:    truncate(p.Title, 60),
					Score:    p.Score,
					Category: "Social",
					Platform: "reddit",
				})
			}
			return items
		}
		if err != nil {
			log.Warn().Err(err).Msg("reddit feed unavailable, using mock entries")
		}
	}
	return mockRedditEntries(g.dateSeed(5), limit)
}

var mockTweets = []string{
	"AI coding assistants transforming developer productivity",
	"Rust adoption in enterprise continues to accelerate",
	"The rise of edge computing and serverless architecture",
	"Security researchers discover critical npm vulnerability",
	"Quantum computing reaches new error-correction milestone",
	"Vector databases become mainstream for LLM applications",
}

var mockRedditTitles = []string{
	"What emerging tech are you betting on this year?",
	"The market did something unexpected again",
	"Megathread: today's biggest story, explained",
	"This chart of global search interest is wild",
	"Why is everyone suddenly talking about this?",
	"Researchers publish surprising new findings",
}

func mockTwitterEntries(seed int64, limit int) []Summary {
	return mockEntries(seed, "twitter", mockTweets, limit)
}

func mockRedditEntries(seed int64, limit int) []Summary {
	return mockEntries(seed, "reddit", mockRedditTitles, limit)
}

func mockEntries(seed int64, platform string, titles []string, limit int) []Summary {
	if limit > len(titles) {
		limit = len(titles)
	}
	r := rand.New(rand.NewSource(seed))
	items := make([]Summary, 0, limit)
	for i := 0; i < limit; i++ {
		base := 8000 - i*900
		items = append(items, Summary{
			ID:       uuid.NewString(),
			Topic:    titles[i],
			Score:    base + r.Intn(base/5),
			Category: "Social",
			Platform: platform,
		})
	}
	return items
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return fmt.Sprintf("%s...", s[:max])
}
