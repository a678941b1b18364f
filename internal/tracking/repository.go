package tracking

import (
	"context"
	"database/sql"
	"errors"

	"LearnScout/be/internal/db"
)

type RepositoryImpl struct {
	db *db.LSDb
}

func NewRepositoryImpl(db *db.LSDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) InsertSearch(ctx context.Context, rec *SearchRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO search_history (user_id, query, learning_level, results_count)
		 VALUES ($1, $2, $3, $4)`,
		rec.UserID, rec.Query, rec.LearningLevel, rec.ResultsCount)
	return err
}

func (r *RepositoryImpl) ListSearches(ctx context.Context, userID string, limit int) ([]SearchRecord, error) {
	var records []SearchRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT id, user_id, query, learning_level, COALESCE(results_count, 0) AS results_count, created_at
		 FROM search_history WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	return records, err
}

func (r *RepositoryImpl) InsertNote(ctx context.Context, note *Note) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		`INSERT INTO user_notes (user_id, topic, title, content, content_url, tags)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		note.UserID, note.Topic, note.Title, note.Content, note.ContentURL, note.Tags)
	return id, err
}

func (r *RepositoryImpl) ListNotes(ctx context.Context, userID, topic string) ([]Note, error) {
	var notes []Note
	if topic == "" {
		err := r.db.SelectContext(ctx, &notes,
			`SELECT * FROM user_notes WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
		return notes, err
	}
	err := r.db.SelectContext(ctx, &notes,
		`SELECT * FROM user_notes WHERE user_id = $1 AND topic = $2 ORDER BY updated_at DESC`,
		userID, topic)
	return notes, err
}

func (r *RepositoryImpl) DeleteNote(ctx context.Context, userID string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *RepositoryImpl) UpsertProgress(ctx context.Context, p *Progress) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO content_tracking
			(user_id, topic, content_url, content_type, watch_time, total_duration,
			 completion_percentage, is_completed, last_watched_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 ON CONFLICT (user_id, content_url) DO UPDATE SET
			watch_time = EXCLUDED.watch_time,
			total_duration = EXCLUDED.total_duration,
			completion_percentage = EXCLUDED.completion_percentage,
			is_completed = EXCLUDED.is_completed,
			last_watched_at = now(),
			updated_at = now()`,
		p.UserID, p.Topic, p.ContentURL, p.ContentType, p.WatchTime,
		p.TotalDuration, p.CompletionPercentage, p.IsCompleted)
	return err
}

func (r *RepositoryImpl) ListProgress(ctx context.Context, userID string) ([]Progress, error) {
	var progress []Progress
	err := r.db.SelectContext(ctx, &progress,
		`SELECT * FROM content_tracking WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return progress, err
}
