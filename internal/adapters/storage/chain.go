package storage

import (
	"context"

	"github.com/kou-isk/youcoder/internal/domain/model"
	"github.com/kou-isk/youcoder/pkg/logger"
	"github.com/kou-isk/youcoder/pkg/metrics"
)

// Chain tries an ordered list of fallible tiers and falls back to a terminal
// in-memory tier that cannot fail. Tiers are attempted strictly sequentially
// within one call.
type Chain struct {
	tiers       []Tier
	memory      *MemoryTier
	maxAttempts int
	logger      logger.Logger
}

// NewChain builds a fallback chain over the given fallible tiers, in order
// of preference. The terminal memory tier is always appended implicitly.
func NewChain(tiers []Tier, opts ...ChainOption) *Chain {
	c := &Chain{
		tiers:       tiers,
		memory:      NewMemoryTier(),
		maxAttempts: len(tiers),
		logger:      logger.Get().Named("storage"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Memory exposes the terminal tier for stats reporting.
func (c *Chain) Memory() *MemoryTier {
	return c.memory
}

// Save persists the timeline for videoID using the configured tier budget.
// An empty videoID is a deliberate "not applicable" signal: the call returns
// false immediately without touching any backend, and without logging.
func (c *Chain) Save(ctx context.Context, videoID string, actions []model.Action) bool {
	return c.SaveWithBudget(ctx, videoID, actions, c.maxAttempts)
}

// SaveWithBudget is Save with an explicit tier budget. maxAttempts caps how
// many fallible tiers are tried before collapsing to the memory cache; a
// budget of zero writes straight to memory. Once the memory tier is reached
// the save cannot fail, so the call always reports true.
func (c *Chain) SaveWithBudget(ctx context.Context, videoID string, actions []model.Action, maxAttempts int) bool {
	if videoID == "" {
		return false
	}
	if maxAttempts > len(c.tiers) {
		maxAttempts = len(c.tiers)
	}
	for i := 0; i < maxAttempts; i++ {
		tier := c.tiers[i]
		if err := tier.WriteTimeline(ctx, videoID, actions); err != nil {
			metrics.RecordSaveError(tier.Name())
			c.logger.Error(ctx, "timeline save failed",
				logger.String("tier", tier.Name()),
				logger.String("videoID", videoID),
				logger.Error(err),
			)
			continue
		}
		if i > 0 {
			metrics.RecordSaveFallback(tier.Name())
			c.logger.Info(ctx, "timeline saved via fallback tier",
				logger.String("tier", tier.Name()),
				logger.String("videoID", videoID),
			)
		}
		metrics.RecordSave(tier.Name())
		return true
	}

	// Terminal tier: a map assignment, defined to always succeed.
	_ = c.memory.WriteTimeline(ctx, videoID, actions)
	metrics.RecordSave(c.memory.Name())
	metrics.RecordSaveFallback(c.memory.Name())
	c.logger.Info(ctx, "timeline saved to in-memory cache",
		logger.String("videoID", videoID),
		logger.Int("actions", len(actions)),
	)
	return true
}

// Load retrieves the timeline for videoID. An empty videoID yields an empty
// sequence with no backend calls. The first tier that responds decides: an
// absent key means an empty timeline, never nil. A tier error falls through
// to the next tier, with the memory cache consulted last so a session that
// survived only in memory stays readable.
func (c *Chain) Load(ctx context.Context, videoID string) []model.Action {
	if videoID == "" {
		return []model.Action{}
	}
	for _, tier := range append(append([]Tier{}, c.tiers...), c.memory) {
		actions, ok, err := tier.ReadTimeline(ctx, videoID)
		if err != nil {
			metrics.RecordLoadError(tier.Name())
			c.logger.Error(ctx, "timeline load failed",
				logger.String("tier", tier.Name()),
				logger.String("videoID", videoID),
				logger.Error(err),
			)
			continue
		}
		if !ok {
			return []model.Action{}
		}
		return actions
	}
	return []model.Action{}
}
