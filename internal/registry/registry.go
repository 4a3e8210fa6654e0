// Package registry maintains the deduplicated, ordered list of team names.
//
// Teams are lower-stakes than timelines, so persistence goes straight to the
// primary backend with no fallback chain.
package registry

import (
	"context"
	"sync"

	"github.com/kou-isk/youcoder/pkg/logger"
	"github.com/kou-isk/youcoder/pkg/metrics"
)

// TeamStore persists the full team list.
type TeamStore interface {
	SaveTeams(ctx context.Context, teams []string) error
	LoadTeams(ctx context.Context) ([]string, error)
}

// Registry is the in-memory team list with write-through persistence.
type Registry struct {
	mu    sync.Mutex
	teams []string

	store  TeamStore
	logger logger.Logger
}

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithStore sets the persistence backend.
func WithStore(st TeamStore) Option {
	return func(r *Registry) {
		r.store = st
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New constructs an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger: logger.Get().Named("registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Restore loads the persisted team list into memory, replacing the current
// one. Called once at service start.
func (r *Registry) Restore(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	teams, err := r.store.LoadTeams(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = teams
	metrics.UpdateTeamCount(len(r.teams))
	return nil
}

// Add appends name unless it is already present (exact string match).
func (r *Registry) Add(ctx context.Context, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.teams {
		if t == name {
			return
		}
	}
	r.teams = append(r.teams, name)
	metrics.UpdateTeamCount(len(r.teams))
	r.persist(ctx)
}

// Remove filters out all entries equal to name. Removing an absent team is
// a no-op, not an error.
func (r *Registry) Remove(ctx context.Context, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.teams[:0]
	removed := false
	for _, t := range r.teams {
		if t == name {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return
	}
	r.teams = kept
	metrics.UpdateTeamCount(len(r.teams))
	r.persist(ctx)
}

// Teams returns a snapshot of the current registry in insertion order.
func (r *Registry) Teams() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.teams))
	copy(out, r.teams)
	return out
}

// persist writes through to the store. Must be called with r.mu held.
func (r *Registry) persist(ctx context.Context) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveTeams(ctx, r.teams); err != nil {
		r.logger.Error(ctx, "team list save failed", logger.Error(err))
	}
}
