package db

import (
	"github.com/jmoiron/sqlx"
)

// LSDb wraps the sqlx handle so repositories depend on one type.
type LSDb struct {
	*sqlx.DB
}

func NewLSDb(driverName, dataSourceUrl string) (*LSDb, error) {
	db, err := sqlx.Connect(driverName, dataSourceUrl)
	if err != nil {
		return nil, err
	}
	return &LSDb{db}, nil
}

// EnsureSchema creates the tables this service owns. Cached search results
// are append-only rows; the most recent unexpired row wins on read.
func (db *LSDb) EnsureSchema() error {
	_, err := db.Exec(schemaDDL)
	return err
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS search_cache (
	id          BIGSERIAL PRIMARY KEY,
	query       TEXT NOT NULL,
	content_key TEXT NOT NULL,
	results     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_search_cache_lookup
	ON search_cache (query, content_key, created_at DESC);

CREATE TABLE IF NOT EXISTS search_history (
	id             BIGSERIAL PRIMARY KEY,
	user_id        TEXT NOT NULL,
	query          TEXT NOT NULL,
	learning_level TEXT NOT NULL,
	results_count  INT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_search_history_user
	ON search_history (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS user_notes (
	id          BIGSERIAL PRIMARY KEY,
	user_id     TEXT NOT NULL,
	topic       TEXT NOT NULL,
	title       TEXT NOT NULL,
	content     TEXT NOT NULL,
	content_url TEXT,
	tags        TEXT[],
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_user_notes_user
	ON user_notes (user_id, topic);

CREATE TABLE IF NOT EXISTS content_tracking (
	id                    BIGSERIAL PRIMARY KEY,
	user_id               TEXT NOT NULL,
	topic                 TEXT NOT NULL,
	content_url           TEXT NOT NULL,
	content_type          TEXT NOT NULL,
	watch_time            INT DEFAULT 0,
	total_duration        INT,
	completion_percentage INT DEFAULT 0,
	is_completed          BOOLEAN DEFAULT FALSE,
	last_watched_at       TIMESTAMPTZ,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, content_url)
);
`
