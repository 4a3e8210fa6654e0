package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/kou-isk/youcoder/internal/domain/model"
)

const timelineSchema = `
CREATE TABLE IF NOT EXISTS timelines (
	video_id TEXT PRIMARY KEY,
	actions  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS teams (
	name     TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);`

// SQLiteTier is the primary storage tier, backed by a local sqlite database.
type SQLiteTier struct {
	db *sql.DB
}

// OpenDB opens (creating if needed) the sqlite database at path and applies
// the schema. The parent directory is created on demand.
func OpenDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(timelineSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// NewSQLiteTier wraps an opened database as the primary tier.
func NewSQLiteTier(db *sql.DB) *SQLiteTier {
	return &SQLiteTier{db: db}
}

// Name implements Tier.
func (t *SQLiteTier) Name() string { return "sqlite" }

// WriteTimeline upserts the JSON-encoded action sequence for videoID. Only
// the one key is touched; timelines for other videos are never merged or
// rewritten.
func (t *SQLiteTier) WriteTimeline(ctx context.Context, videoID string, actions []model.Action) error {
	payload, err := json.Marshal(actions)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	_, err = t.db.ExecContext(ctx, `
		INSERT INTO timelines (video_id, actions) VALUES (?, ?)
		ON CONFLICT(video_id) DO UPDATE SET actions = excluded.actions
	`, videoID, string(payload))
	if err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	return nil
}

// ReadTimeline loads the stored sequence for videoID.
func (t *SQLiteTier) ReadTimeline(ctx context.Context, videoID string) ([]model.Action, bool, error) {
	var payload string
	err := t.db.QueryRowContext(ctx,
		"SELECT actions FROM timelines WHERE video_id = ?", videoID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read timeline: %w", err)
	}
	var actions []model.Action
	if err := json.Unmarshal([]byte(payload), &actions); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorruptTimeline, err)
	}
	return actions, true, nil
}
