package search

import (
	"context"

	"LearnScout/be/internal/content"
)

// CandidateFetcher returns raw candidates for one content type. It never
// returns an error: upstream failure degrades to a fallback or an empty
// list so a single source cannot fail the whole search.
type CandidateFetcher interface {
	Fetch(ctx context.Context, enhancedQuery, topic string, level content.Level) []content.Candidate
}

// ScoredFetcher returns candidates that already carry a trusted relevance
// score and bypass the LLM scorer. Same no-error contract as
// CandidateFetcher.
type ScoredFetcher interface {
	Fetch(ctx context.Context, enhancedQuery, topic string, level content.Level) []content.Scored
}

// VideoHit is one raw result from the video search provider.
type VideoHit struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	PublishedAt  string
	ThumbnailURL string
}

// VideoDetail carries per-video metadata retrieved in a second batched call.
type VideoDetail struct {
	// Duration is the provider's ISO-8601 period encoding ("PT15M32S").
	Duration  string
	ViewCount uint64
	LikeCount uint64
}

// VideoAPI abstracts the video search provider so fetchers and tests do not
// depend on the concrete client.
type VideoAPI interface {
	Search(ctx context.Context, query string, maxResults int64) ([]VideoHit, error)
	Details(ctx context.Context, ids []string) (map[string]VideoDetail, error)
}

// WebResult is one organic result from the web search provider.
type WebResult struct {
	Title   string
	URL     string
	Snippet string
}

// WebSearcher abstracts the web search provider used by the website fetcher.
type WebSearcher interface {
	TopResults(ctx context.Context, query string, n int) ([]WebResult, error)
}
