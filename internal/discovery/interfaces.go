package discovery

import (
	"context"
	"errors"

	"LearnScout/be/internal/content"
)

// ErrEmptyQuery is the one caller fault the pipeline surfaces as such.
var ErrEmptyQuery = errors.New("query is required")

type SearchRequest struct {
	Query         string `json:"query"`
	LearningLevel string `json:"learningLevel,omitempty"`
}

type AvailabilityRequest struct {
	Query string `json:"query"`
}

// Availability reports how much content each level has for a topic, so the
// client can decide whether to ask the user to pick a level.
type Availability struct {
	NeedsLevelSelection bool                  `json:"needsLevelSelection"`
	ContentAvailability map[content.Level]int `json:"contentAvailability"`
	DefaultLevel        content.Level         `json:"defaultLevel"`
}

type Service interface {
	Search(ctx context.Context, query string, level content.Level) (*content.ResultSet, error)
	CheckAvailability(ctx context.Context, query string) (*Availability, error)
}

// HistoryRecorder persists one search for the user's history. Implemented
// by the tracking service; declared here so discovery does not depend on it.
type HistoryRecorder interface {
	RecordSearch(ctx context.Context, userID, query string, level content.Level, resultsCount int) error
}
