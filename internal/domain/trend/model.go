// internal/domain/trend/model.go

package trend

// InterestPoint is one sample of relative search interest (0-100) for a
// topic. Values outside that range are unusual but not rejected.
type InterestPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Timeline is an ordered series of interest points, oldest first.
// Typically seven points; date labels may repeat across weeks.
type Timeline []InterestPoint

// Status labels the trajectory of a timeline. It is derived from the
// timeline on every analysis and never stored on its own.
type Status string

const (
	StatusExploding Status = "Exploding"
	StatusRising    Status = "Rising"
	StatusStable    Status = "Stable"
	StatusDeclining Status = "Declining"
)

// SourcePost is a social post excerpt attached to an analysis, in the
// relevance order the source returned it.
type SourcePost struct {
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
	URL       string `json:"url"`
}

// GoogleData is the normalized search-interest payload for a topic.
type GoogleData struct {
	InterestOverTime Timeline `json:"interest_over_time"`
	RelatedQueries   []string `json:"related_queries"`
}

// RedditData is the normalized community payload for a topic.
type RedditData struct {
	TopPosts  []SourcePost `json:"top_posts"`
	Sentiment string       `json:"sentiment"`
}

// TwitterData is reserved for a live Twitter integration. The analysis
// path has none wired, so the field carrying it is always null there.
type TwitterData struct {
	TopPosts []SourcePost `json:"top_posts"`
}

// Sources groups the per-platform payloads of an analysis.
type Sources struct {
	Google  GoogleData   `json:"google"`
	Reddit  RedditData   `json:"reddit"`
	Twitter *TwitterData `json:"twitter"`
}

// AnalysisResult is the root aggregate for one analyzed topic. It is
// built fresh per request and never mutated after construction.
type AnalysisResult struct {
	Topic         string   `json:"topic"`
	Status        Status   `json:"status"`
	Summary       string   `json:"summary"`
	Sources       Sources  `json:"sources"`
	RelatedTopics []string `json:"related_topics"`
}
