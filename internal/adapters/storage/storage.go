// Package storage persists per-video timelines through an ordered chain of
// storage tiers.
//
// Conventions:
// - Tiers are tried strictly in order within one call, never raced.
// - The terminal in-memory tier cannot fail, so a save that reaches it
//   always reports success.
// - All functions accept context.Context as the first parameter.
package storage

import (
	"context"

	"github.com/kou-isk/youcoder/internal/domain/model"
)

// Tier is one storage backend in the fallback chain.
type Tier interface {
	// Name identifies the tier in logs and metrics.
	Name() string

	// WriteTimeline associates videoID with its action sequence.
	WriteTimeline(ctx context.Context, videoID string, actions []model.Action) error

	// ReadTimeline returns the stored sequence for videoID. The second
	// return reports whether the key was present; a tier that responds
	// without the key yields (nil, false, nil).
	ReadTimeline(ctx context.Context, videoID string) ([]model.Action, bool, error)
}
