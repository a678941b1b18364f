package tracking

import (
	"context"
	"testing"

	"LearnScout/be/internal/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	searches      []SearchRecord
	notes         []Note
	progress      []Progress
	listLimit     int
	deleteResult  bool
	deleteErr     error
	nextNoteID    int64
	lastUpserted  *Progress
	lastListTopic string
}

func (f *fakeRepository) InsertSearch(_ context.Context, rec *SearchRecord) error {
	f.searches = append(f.searches, *rec)
	return nil
}

func (f *fakeRepository) ListSearches(_ context.Context, _ string, limit int) ([]SearchRecord, error) {
	f.listLimit = limit
	return f.searches, nil
}

func (f *fakeRepository) InsertNote(_ context.Context, note *Note) (int64, error) {
	f.nextNoteID++
	note.ID = f.nextNoteID
	f.notes = append(f.notes, *note)
	return f.nextNoteID, nil
}

func (f *fakeRepository) ListNotes(_ context.Context, _ string, topic string) ([]Note, error) {
	f.lastListTopic = topic
	return f.notes, nil
}

func (f *fakeRepository) DeleteNote(_ context.Context, _ string, _ int64) (bool, error) {
	return f.deleteResult, f.deleteErr
}

func (f *fakeRepository) UpsertProgress(_ context.Context, p *Progress) error {
	f.lastUpserted = p
	f.progress = append(f.progress, *p)
	return nil
}

func (f *fakeRepository) ListProgress(_ context.Context, _ string) ([]Progress, error) {
	return f.progress, nil
}

func TestRecordSearchStoresLevelAndCount(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewServiceImpl(repo)

	err := svc.RecordSearch(context.Background(), "user-1", "python", content.Intermediate, 7)
	require.NoError(t, err)

	require.Len(t, repo.searches, 1)
	assert.Equal(t, "intermediate", repo.searches[0].LearningLevel)
	assert.Equal(t, 7, repo.searches[0].ResultsCount)
}

func TestHistoryClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero falls back to default", 0, defaultHistoryLimit},
		{"negative falls back to default", -3, defaultHistoryLimit},
		{"oversized falls back to default", 500, defaultHistoryLimit},
		{"in range passes through", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			svc := NewServiceImpl(repo)

			_, err := svc.History(context.Background(), "user-1", tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, repo.listLimit)
		})
	}
}

func TestDeleteNoteMapsMissingRowToErrNotFound(t *testing.T) {
	repo := &fakeRepository{deleteResult: false}
	svc := NewServiceImpl(repo)

	err := svc.DeleteNote(context.Background(), "user-1", 42)
	assert.ErrorIs(t, err, ErrNotFound)

	repo.deleteResult = true
	assert.NoError(t, svc.DeleteNote(context.Background(), "user-1", 42))
}

func TestSaveProgressClampsCompletion(t *testing.T) {
	tests := []struct {
		name           string
		completion     int
		isCompleted    bool
		wantCompletion int
		wantCompleted  bool
	}{
		{"negative clamped to zero", -10, false, 0, false},
		{"over hundred clamped and completed", 140, false, 100, true},
		{"full watch marks completed", 100, false, 100, true},
		{"explicit flag preserved", 50, true, 50, true},
		{"partial stays incomplete", 50, false, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			svc := NewServiceImpl(repo)

			err := svc.SaveProgress(context.Background(), "user-1", ProgressRequest{
				Topic:                "go",
				ContentURL:           "https://example.com/video",
				ContentType:          "video",
				CompletionPercentage: tt.completion,
				IsCompleted:          tt.isCompleted,
			})
			require.NoError(t, err)

			require.NotNil(t, repo.lastUpserted)
			assert.Equal(t, tt.wantCompletion, repo.lastUpserted.CompletionPercentage)
			assert.Equal(t, tt.wantCompleted, repo.lastUpserted.IsCompleted)
		})
	}
}

func TestNotesForwardsTopicFilter(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewServiceImpl(repo)

	_, err := svc.Notes(context.Background(), "user-1", "algorithms")
	require.NoError(t, err)
	assert.Equal(t, "algorithms", repo.lastListTopic)
}
