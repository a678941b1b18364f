package tracking

import (
	"context"
	"time"

	"LearnScout/be/internal/content"

	"github.com/lib/pq"
)

type SearchRecord struct {
	ID            int64     `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"-"`
	Query         string    `db:"query" json:"query"`
	LearningLevel string    `db:"learning_level" json:"learning_level"`
	ResultsCount  int       `db:"results_count" json:"results_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type Note struct {
	ID         int64          `db:"id" json:"id"`
	UserID     string         `db:"user_id" json:"-"`
	Topic      string         `db:"topic" json:"topic"`
	Title      string         `db:"title" json:"title"`
	Content    string         `db:"content" json:"content"`
	ContentURL *string        `db:"content_url" json:"content_url,omitempty"`
	Tags       pq.StringArray `db:"tags" json:"tags,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

type Progress struct {
	ID                   int64      `db:"id" json:"id"`
	UserID               string     `db:"user_id" json:"-"`
	Topic                string     `db:"topic" json:"topic"`
	ContentURL           string     `db:"content_url" json:"content_url"`
	ContentType          string     `db:"content_type" json:"content_type"`
	WatchTime            int        `db:"watch_time" json:"watch_time"`
	TotalDuration        *int       `db:"total_duration" json:"total_duration,omitempty"`
	CompletionPercentage int        `db:"completion_percentage" json:"completion_percentage"`
	IsCompleted          bool       `db:"is_completed" json:"is_completed"`
	LastWatchedAt        *time.Time `db:"last_watched_at" json:"last_watched_at,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateNoteRequest struct {
	Topic      string   `json:"topic" binding:"required"`
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	ContentURL *string  `json:"content_url"`
	Tags       []string `json:"tags"`
}

type ProgressRequest struct {
	Topic                string `json:"topic" binding:"required"`
	ContentURL           string `json:"content_url" binding:"required"`
	ContentType          string `json:"content_type" binding:"required"`
	WatchTime            int    `json:"watch_time"`
	TotalDuration        *int   `json:"total_duration"`
	CompletionPercentage int    `json:"completion_percentage"`
	IsCompleted          bool   `json:"is_completed"`
}

type Repository interface {
	InsertSearch(ctx context.Context, rec *SearchRecord) error
	ListSearches(ctx context.Context, userID string, limit int) ([]SearchRecord, error)
	InsertNote(ctx context.Context, note *Note) (int64, error)
	ListNotes(ctx context.Context, userID, topic string) ([]Note, error)
	DeleteNote(ctx context.Context, userID string, id int64) (bool, error)
	UpsertProgress(ctx context.Context, p *Progress) error
	ListProgress(ctx context.Context, userID string) ([]Progress, error)
}

type Service interface {
	RecordSearch(ctx context.Context, userID, query string, level content.Level, resultsCount int) error
	History(ctx context.Context, userID string, limit int) ([]SearchRecord, error)
	CreateNote(ctx context.Context, userID string, req CreateNoteRequest) (int64, error)
	Notes(ctx context.Context, userID, topic string) ([]Note, error)
	DeleteNote(ctx context.Context, userID string, id int64) error
	SaveProgress(ctx context.Context, userID string, req ProgressRequest) error
	ProgressFor(ctx context.Context, userID string) ([]Progress, error)
}
