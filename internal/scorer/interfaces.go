package scorer

import (
	"context"

	"LearnScout/be/internal/content"
)

// Input describes one candidate to analyze.
type Input struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Query       string       `json:"query" binding:"required"`
	ContentType content.Type `json:"contentType"`
	// Duration is the display form ("15:32"), only set for videos.
	Duration string `json:"duration,omitempty"`
}

// Result is the scorer's verdict. RelevanceScore is always in [0,100].
type Result struct {
	Summary        string   `json:"summary"`
	IsEducational  bool     `json:"isEducational"`
	RelevanceScore int      `json:"relevanceScore"`
	LearningTopics []string `json:"learningTopics"`
}

// Service analyzes a candidate for educational value. Score never fails:
// any upstream or parse error degrades to a fixed fallback verdict so the
// pipeline always has a score to filter and sort on.
type Service interface {
	Score(ctx context.Context, in Input) Result
}
