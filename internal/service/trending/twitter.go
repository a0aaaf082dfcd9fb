// internal/service/trending/twitter.go

package trending

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
)

type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// TwitterClient wraps the v2 recent-search API for the global listing.
// It is nil when no bearer token is configured, selecting the mock path.
type TwitterClient struct {
	client *twitter.Client
}

// NewTwitterClient returns nil when the bearer token is empty.
func NewTwitterClient(bearerToken string) *TwitterClient {
	if bearerToken == "" {
		return nil
	}
	return &TwitterClient{
		client: &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client:     &http.Client{Timeout: 10 * time.Second},
			Host:       "https://api.twitter.com",
		},
	}
}

// tweetItem is one scored tweet from the recent-search endpoint.
type tweetItem struct {
	ID    string
	Text  string
	Score int
}

// RecentPosts searches recent tweets for the query and scores them by
// engagement: likes, then retweets double, replies and quotes triple.
func (c *TwitterClient) RecentPosts(ctx context.Context, query string, limit int) ([]tweetItem, error) {
	if limit < 10 {
		limit = 10 // recent search minimum page size
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults:  limit,
		TweetFields: []twitter.TweetField{twitter.TweetFieldPublicMetrics},
	}
	resp, err := c.client.TweetRecentSearch(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("tweet recent search failed: %w", err)
	}
	if resp.Raw == nil {
		return nil, fmt.Errorf("empty recent search response")
	}

	items := make([]tweetItem, 0, len(resp.Raw.Tweets))
	for _, tw := range resp.Raw.Tweets {
		if tw == nil {
			continue
		}
		var score int
		if m := tw.PublicMetrics; m != nil {
			score = m.Likes + m.Retweets*2 + m.Replies*3 + m.Quotes*3
		}
		items = append(items, tweetItem{ID: tw.ID, Text: tw.Text, Score: score})
	}
	return items, nil
}
