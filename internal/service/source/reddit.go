// internal/service/source/reddit.go

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/adapter/cache"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/config"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

const topPostCount = 3

// redditListing is the envelope shape of Reddit's public JSON endpoints.
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
	Permalink string `json:"permalink"`
}

// RedditAdapter fetches topic discussion from Reddit. A live call is
// attempted only when all three credential values are configured; any
// failure or empty result is replaced with fixed-shape synthetic posts.
type RedditAdapter struct {
	cfg        config.RedditConfig
	httpClient *http.Client
	cache      cache.Store
	ttl        time.Duration
	syn        *Synthetic
}

// NewRedditAdapter creates the adapter. The cache may be nil.
func NewRedditAdapter(cfg config.RedditConfig, store cache.Store, ttl time.Duration, syn *Synthetic) *RedditAdapter {
	return &RedditAdapter{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: store,
		ttl:   ttl,
		syn:   syn,
	}
}

// Fetch returns community data for the topic, consulting the cache first.
func (a *RedditAdapter) Fetch(ctx context.Context, topic string) trend.RedditData {
	key := "reddit:" + strings.ToLower(strings.TrimSpace(topic))
	if a.cache != nil {
		if v, ok := a.cache.Get(key); ok {
			if data, ok := v.(trend.RedditData); ok {
				return data
			}
		}
	}

	data, outcome := a.fetch(ctx, topic)
	if !outcome.Live {
		log.Warn().Str("topic", topic).Str("reason", outcome.Reason).Msg("reddit adapter serving synthetic data")
	}

	if a.cache != nil {
		a.cache.Set(key, data, a.ttl)
	}
	return data
}

func (a *RedditAdapter) fetch(ctx context.Context, topic string) (trend.RedditData, Outcome) {
	if !a.cfg.Configured() {
		return a.synthetic(topic), fallback("credentials not configured")
	}

	posts, err := a.search(ctx, topic, 10)
	if err != nil {
		return a.synthetic(topic), fallback(err.Error())
	}
	if len(posts) == 0 {
		return a.synthetic(topic), fallback("no posts returned")
	}

	if len(posts) > topPostCount {
		posts = posts[:topPostCount]
	}
	return trend.RedditData{TopPosts: posts, Sentiment: sentimentFor(posts)}, live()
}

func (a *RedditAdapter) synthetic(topic string) trend.RedditData {
	return trend.RedditData{
		TopPosts:  a.syn.Posts(topic),
		Sentiment: "Positive",
	}
}

// search queries Reddit's public search endpoint in hotness order.
func (a *RedditAdapter) search(ctx context.Context, topic string, limit int) ([]trend.SourcePost, error) {
	endpoint := fmt.Sprintf(
		"%s/search.json?q=%s&sort=hot&t=week&limit=%d",
		strings.TrimRight(a.cfg.BaseURL, "/"), url.QueryEscape(topic), limit,
	)
	return a.listing(ctx, endpoint)
}

// Popular fetches the current top posts of r/popular. Unlike Fetch this
// can fail: it serves the listing endpoints, which keep their own
// fallbacks.
func (a *RedditAdapter) Popular(ctx context.Context, limit int) ([]trend.SourcePost, error) {
	if limit <= 0 {
		limit = 25
	}
	endpoint := fmt.Sprintf(
		"%s/r/popular/top.json?limit=%d&t=day",
		strings.TrimRight(a.cfg.BaseURL, "/"), limit,
	)
	return a.listing(ctx, endpoint)
}

func (a *RedditAdapter) listing(ctx context.Context, endpoint string) ([]trend.SourcePost, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// A descriptive User-Agent avoids Reddit's anonymous rate limiting.
	userAgent := a.cfg.UserAgent
	if userAgent == "" {
		userAgent = "crazedo/1.0"
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Reddit API returned status code %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit API response: %w", err)
	}

	posts := make([]trend.SourcePost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		score := child.Data.Score
		if score < 0 {
			score = 0
		}
		posts = append(posts, trend.SourcePost{
			Title:     child.Data.Title,
			Subreddit: child.Data.Subreddit,
			Score:     score,
			URL:       "https://www.reddit.com" + child.Data.Permalink,
		})
	}
	return posts, nil
}

// sentimentFor is a coarse engagement read on the live posts. The
// synthetic path always reports "Positive".
func sentimentFor(posts []trend.SourcePost) string {
	var total int
	for _, p := range posts {
		total += p.Score
	}
	if len(posts) > 0 && total/len(posts) >= 50 {
		return "Positive"
	}
	return "Neutral"
}
