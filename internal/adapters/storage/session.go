package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kou-isk/youcoder/internal/domain/model"
)

// SessionTier is the secondary tier: a synchronous, session-scoped string
// store holding the whole timeline map as one JSON document. Saves merge the
// video's timeline into the existing document before rewriting it, so data
// written by earlier sessions survives a single-key update.
type SessionTier struct {
	path string
}

// NewSessionTier creates a session tier persisting to the given file path.
func NewSessionTier(path string) *SessionTier {
	return &SessionTier{path: path}
}

// Name implements Tier.
func (t *SessionTier) Name() string { return "session" }

// WriteTimeline merges {videoID: actions} into the session document.
func (t *SessionTier) WriteTimeline(ctx context.Context, videoID string, actions []model.Action) error {
	timelines, err := t.readAll()
	if err != nil {
		return err
	}
	timelines[videoID] = actions
	payload, err := json.Marshal(timelines)
	if err != nil {
		return fmt.Errorf("encode session store: %w", err)
	}
	if err := os.WriteFile(t.path, payload, 0o644); err != nil {
		return fmt.Errorf("write session store: %w", err)
	}
	return nil
}

// ReadTimeline returns the sequence stored under videoID, if any.
func (t *SessionTier) ReadTimeline(ctx context.Context, videoID string) ([]model.Action, bool, error) {
	timelines, err := t.readAll()
	if err != nil {
		return nil, false, err
	}
	actions, ok := timelines[videoID]
	return actions, ok, nil
}

func (t *SessionTier) readAll() (map[string][]model.Action, error) {
	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return map[string][]model.Action{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session store: %w", err)
	}
	timelines := map[string][]model.Action{}
	if len(data) == 0 {
		return timelines, nil
	}
	if err := json.Unmarshal(data, &timelines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTimeline, err)
	}
	return timelines, nil
}
