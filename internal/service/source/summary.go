// internal/service/source/summary.go

package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/phuslu/log"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/config"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

// UnableMessage replaces a summary that came back empty after trimming.
const UnableMessage = "Unable to generate summary."

const summaryPrompt = `You are a trend analyst. In 2-3 sentences, explain what is happening with the topic %q given this data.

Trend status: %s
7-day search interest: %s
Top community posts:
%s
Related queries: %s

Respond with ONLY the explanation, no preamble.`

// NoKeyTemplate is the summary used when no API key is configured.
const NoKeyTemplate = "%s is currently showing a %s trend based on search interest and social media activity over the past week."

// CallFailedTemplate is the summary used when a live call fails.
const CallFailedTemplate = "%s has a %s trend this week according to search and social data. Live summary generation was unavailable."

// Summarizer produces the natural-language summary for an analysis. With
// no API key it interpolates a fixed template; with one it makes a single
// chat-completion call, falling back to a slightly different template on
// any failure. No retries.
type Summarizer struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewSummarizer creates the summarizer from OpenAI config. An empty API
// key selects the template-only path.
func NewSummarizer(cfg config.OpenAIConfig) *Summarizer {
	return &Summarizer{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Summarize returns a 2-3 sentence explanation of the topic's trend. It
// never returns an empty string and never fails.
func (s *Summarizer) Summarize(ctx context.Context, topic string, status trend.Status, google trend.GoogleData, reddit trend.RedditData) string {
	if s.apiKey == "" {
		return fmt.Sprintf(NoKeyTemplate, topic, status)
	}

	prompt := fmt.Sprintf(
		summaryPrompt,
		topic,
		status,
		formatTimeline(google.InterestOverTime),
		formatPosts(reddit.TopPosts),
		strings.Join(google.RelatedQueries, ", "),
	)

	text, err := s.call(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("summary generation failed")
		return fmt.Sprintf(CallFailedTemplate, topic, status)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return UnableMessage
	}
	return text
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *Summarizer) call(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model:    s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai API %d: %s", resp.StatusCode, string(b))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func formatTimeline(tl trend.Timeline) string {
	parts := make([]string, len(tl))
	for i, p := range tl {
		parts[i] = fmt.Sprintf("%s:%d", p.Date, p.Value)
	}
	return strings.Join(parts, ", ")
}

func formatPosts(posts []trend.SourcePost) string {
	var sb strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&sb, "- %s (%d points, r/%s)\n", p.Title, p.Score, p.Subreddit)
	}
	return sb.String()
}
