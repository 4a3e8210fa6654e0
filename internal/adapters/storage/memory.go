package storage

import (
	"context"
	"sync"

	"github.com/kou-isk/youcoder/internal/domain/model"
)

// MemoryTier is the terminal tier: a plain in-process map. Its write path is
// a map assignment and returns nil unconditionally, which is what lets the
// chain guarantee that a save always eventually succeeds.
type MemoryTier struct {
	mu        sync.RWMutex
	timelines map[string][]model.Action
}

// NewMemoryTier creates an empty in-process tier.
func NewMemoryTier() *MemoryTier {
	return &MemoryTier{timelines: make(map[string][]model.Action)}
}

// Name implements Tier.
func (t *MemoryTier) Name() string { return "memory" }

// WriteTimeline stores a deep copy of the sequence. Never fails.
func (t *MemoryTier) WriteTimeline(ctx context.Context, videoID string, actions []model.Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timelines[videoID] = model.CloneTimeline(actions)
	return nil
}

// ReadTimeline returns the cached sequence for videoID, if any.
func (t *MemoryTier) ReadTimeline(ctx context.Context, videoID string) ([]model.Action, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	actions, ok := t.timelines[videoID]
	if !ok {
		return nil, false, nil
	}
	return model.CloneTimeline(actions), true, nil
}

// Len reports how many videos currently live only in memory.
func (t *MemoryTier) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.timelines)
}
