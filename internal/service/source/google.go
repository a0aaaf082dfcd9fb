// internal/service/source/google.go

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/adapter/cache"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/config"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

// GoogleAdapter fetches a 7-day interest timeline and related queries for
// a topic. Any request failure, parse failure or empty result is absorbed
// and replaced with synthetic data, so Fetch always returns a well-shaped
// payload.
type GoogleAdapter struct {
	client *trendsClient
	cache  cache.Store
	ttl    time.Duration
	syn    *Synthetic
}

// NewGoogleAdapter creates the adapter. The cache may be nil, in which
// case every fetch goes to the provider.
func NewGoogleAdapter(cfg config.GoogleConfig, store cache.Store, ttl time.Duration, syn *Synthetic) *GoogleAdapter {
	return &GoogleAdapter{
		client: newTrendsClient(cfg.BaseURL, cfg.Timeout),
		cache:  store,
		ttl:    ttl,
		syn:    syn,
	}
}

// Fetch returns search-interest data for the topic, consulting the cache
// first and populating it with whatever was served.
func (a *GoogleAdapter) Fetch(ctx context.Context, topic string) trend.GoogleData {
	key := "google:" + strings.ToLower(strings.TrimSpace(topic))
	if a.cache != nil {
		if v, ok := a.cache.Get(key); ok {
			if data, ok := v.(trend.GoogleData); ok {
				return data
			}
		}
	}

	data, outcome := a.fetch(ctx, topic)
	if !outcome.Live {
		log.Warn().Str("topic", topic).Str("reason", outcome.Reason).Msg("google adapter serving synthetic data")
	}

	if a.cache != nil {
		a.cache.Set(key, data, a.ttl)
	}
	return data
}

func (a *GoogleAdapter) fetch(ctx context.Context, topic string) (trend.GoogleData, Outcome) {
	timeline, queries, err := a.client.interestOverTime(ctx, topic)
	if err != nil {
		return a.synthetic(topic), fallback(err.Error())
	}
	if len(timeline) == 0 {
		return a.synthetic(topic), fallback("empty timeline")
	}
	if len(queries) == 0 {
		queries = a.syn.RelatedQueries(topic)
	}
	return trend.GoogleData{InterestOverTime: timeline, RelatedQueries: queries}, live()
}

func (a *GoogleAdapter) synthetic(topic string) trend.GoogleData {
	return trend.GoogleData{
		InterestOverTime: a.syn.Timeline(topic),
		RelatedQueries:   a.syn.RelatedQueries(topic),
	}
}

// trendsClient talks to the unofficial Google Trends widget API: an
// explore call hands out per-widget tokens, which unlock the timeseries
// and related-queries widget data. Every response body is prefixed with
// ")]}'" garbage that must be stripped before JSON parsing.
type trendsClient struct {
	baseURL    string
	httpClient *http.Client
}

func newTrendsClient(baseURL string, timeout time.Duration) *trendsClient {
	return &trendsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type exploreWidget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type exploreResponse struct {
	Widgets []exploreWidget `json:"widgets"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []struct {
			FormattedAxisTime string   `json:"formattedAxisTime"`
			Value             []int    `json:"value"`
			FormattedValue    []string `json:"formattedValue"`
		} `json:"timelineData"`
	} `json:"default"`
}

type relatedResponse struct {
	Default struct {
		RankedList []struct {
			RankedKeyword []struct {
				Query string `json:"query"`
			} `json:"rankedKeyword"`
		} `json:"rankedList"`
	} `json:"default"`
}

func (c *trendsClient) interestOverTime(ctx context.Context, topic string) (trend.Timeline, []string, error) {
	widgets, err := c.explore(ctx, topic)
	if err != nil {
		return nil, nil, err
	}

	var timeseries, related *exploreWidget
	for i := range widgets {
		switch widgets[i].ID {
		case "TIMESERIES":
			timeseries = &widgets[i]
		case "RELATED_QUERIES":
			related = &widgets[i]
		}
	}
	if timeseries == nil {
		return nil, nil, fmt.Errorf("explore response has no timeseries widget")
	}

	timeline, err := c.multiline(ctx, timeseries)
	if err != nil {
		return nil, nil, err
	}

	var queries []string
	if related != nil {
		// Related queries are best-effort: a failure here should not
		// discard a good timeline.
		queries, err = c.relatedQueries(ctx, related)
		if err != nil {
			log.Debug().Err(err).Str("topic", topic).Msg("related queries lookup failed")
			queries = nil
		}
	}

	return timeline, queries, nil
}

func (c *trendsClient) explore(ctx context.Context, topic string) ([]exploreWidget, error) {
	exploreReq := fmt.Sprintf(
		`{"comparisonItem":[{"keyword":%q,"geo":"","time":"now 7-d"}],"category":0,"property":""}`,
		topic,
	)
	endpoint := fmt.Sprintf(
		"%s/trends/api/explore?hl=en-US&tz=0&req=%s",
		c.baseURL, url.QueryEscape(exploreReq),
	)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("explore request failed: %w", err)
	}

	var parsed exploreResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode explore response: %w", err)
	}
	return parsed.Widgets, nil
}

func (c *trendsClient) multiline(ctx context.Context, widget *exploreWidget) (trend.Timeline, error) {
	endpoint := fmt.Sprintf(
		"%s/trends/api/widgetdata/multiline?hl=en-US&tz=0&req=%s&token=%s",
		c.baseURL, url.QueryEscape(string(widget.Request)), url.QueryEscape(widget.Token),
	)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("multiline request failed: %w", err)
	}

	var parsed multilineResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode multiline response: %w", err)
	}

	timeline := make(trend.Timeline, 0, len(parsed.Default.TimelineData))
	for _, point := range parsed.Default.TimelineData {
		if len(point.Value) == 0 {
			continue
		}
		timeline = append(timeline, trend.InterestPoint{
			Date:  point.FormattedAxisTime,
			Value: point.Value[0],
		})
	}
	return timeline, nil
}

func (c *trendsClient) relatedQueries(ctx context.Context, widget *exploreWidget) ([]string, error) {
	endpoint := fmt.Sprintf(
		"%s/trends/api/widgetdata/relatedsearches?hl=en-US&tz=0&req=%s&token=%s",
		c.baseURL, url.QueryEscape(string(widget.Request)), url.QueryEscape(widget.Token),
	)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("relatedsearches request failed: %w", err)
	}

	var parsed relatedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode relatedsearches response: %w", err)
	}

	var queries []string
	for _, list := range parsed.Default.RankedList {
		for _, kw := range list.RankedKeyword {
			if kw.Query != "" {
				queries = append(queries, kw.Query)
			}
		}
	}
	return queries, nil
}

func (c *trendsClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "crazedo/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach trends provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends provider returned status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return stripXSSIPrefix(body), nil
}

// stripXSSIPrefix drops everything before the first JSON delimiter. The
// widget API prepends ")]}'," to every body.
func stripXSSIPrefix(body []byte) []byte {
	for i, b := range body {
		if b == '{' || b == '[' {
			return body[i:]
		}
	}
	return body
}
