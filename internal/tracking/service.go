package tracking

import (
	"context"
	"errors"

	"LearnScout/be/internal/content"
)

const defaultHistoryLimit = 20

// ErrNotFound reports a missing or foreign record.
var ErrNotFound = errors.New("record not found")

type ServiceImpl struct {
	repo Repository
}

func NewServiceImpl(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) RecordSearch(ctx context.Context, userID, query string, level content.Level, resultsCount int) error {
	return s.repo.InsertSearch(ctx, &SearchRecord{
		UserID:        userID,
		Query:         query,
		LearningLevel: string(level),
		ResultsCount:  resultsCount,
	})
}

func (s *ServiceImpl) History(ctx context.Context, userID string, limit int) ([]SearchRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}
	return s.repo.ListSearches(ctx, userID, limit)
}

func (s *ServiceImpl) CreateNote(ctx context.Context, userID string, req CreateNoteRequest) (int64, error) {
	return s.repo.InsertNote(ctx, &Note{
		UserID:     userID,
		Topic:      req.Topic,
		Title:      req.Title,
		Content:    req.Content,
		ContentURL: req.ContentURL,
		Tags:       req.Tags,
	})
}

func (s *ServiceImpl) Notes(ctx context.Context, userID, topic string) ([]Note, error) {
	return s.repo.ListNotes(ctx, userID, topic)
}

func (s *ServiceImpl) DeleteNote(ctx context.Context, userID string, id int64) error {
	deleted, err := s.repo.DeleteNote(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *ServiceImpl) SaveProgress(ctx context.Context, userID string, req ProgressRequest) error {
	completion := req.CompletionPercentage
	if completion < 0 {
		completion = 0
	}
	if completion > 100 {
		completion = 100
	}
	return s.repo.UpsertProgress(ctx, &Progress{
		UserID:               userID,
		Topic:                req.Topic,
		ContentURL:           req.ContentURL,
		ContentType:          req.ContentType,
		WatchTime:            req.WatchTime,
		TotalDuration:        req.TotalDuration,
		CompletionPercentage: completion,
		IsCompleted:          req.IsCompleted || completion == 100,
	})
}

func (s *ServiceImpl) ProgressFor(ctx context.Context, userID string) ([]Progress, error) {
	return s.repo.ListProgress(ctx, userID)
}
