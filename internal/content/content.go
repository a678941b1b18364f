package content

import "strings"

// Level biases query expansion, duration filtering and score thresholds.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// ParseLevel maps a request string to a Level. Unknown or empty input
// defaults to Beginner.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case Intermediate:
		return Intermediate
	case Advanced:
		return Advanced
	default:
		return Beginner
	}
}

// Type tags a candidate with its platform family.
type Type string

const (
	Video   Type = "video"
	Blog    Type = "blog"
	Website Type = "website"
)

// Candidate is a content item as produced by a source fetcher, before
// scoring. Immutable once produced.
type Candidate struct {
	Title        string                 `json:"title"`
	URL          string                 `json:"url"`
	Author       string                 `json:"author,omitempty"`
	Source       string                 `json:"source"`
	Type         Type                   `json:"content_type"`
	Description  string                 `json:"-"`
	Duration     string                 `json:"duration,omitempty"`
	PublishDate  string                 `json:"publish_date,omitempty"`
	ThumbnailURL string                 `json:"thumbnail_url,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// Scored is a Candidate decorated with the relevance scorer's verdict.
// RelevanceScore is always set after scoring; the scorer guarantees a
// fallback value on any failure.
type Scored struct {
	Candidate
	Summary        string   `json:"summary"`
	IsEducational  bool     `json:"isEducational"`
	RelevanceScore int      `json:"relevanceScore"`
	LearningTopics []string `json:"learningTopics"`
}

// ResultSet is the payload of one search, bucketed by content type. It is
// cached verbatim and replaced wholesale on recompute.
type ResultSet struct {
	Videos        []Scored `json:"videos"`
	Websites      []Scored `json:"websites"`
	Blogs         []Scored `json:"blogs"`
	TotalResults  int      `json:"totalResults"`
	LearningLevel Level    `json:"learningLevel"`
}
