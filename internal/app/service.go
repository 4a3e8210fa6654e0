// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kou-isk/youcoder/internal/adapters/persist"
	"github.com/kou-isk/youcoder/internal/adapters/storage"
	"github.com/kou-isk/youcoder/internal/clock"
	"github.com/kou-isk/youcoder/internal/config"
	"github.com/kou-isk/youcoder/internal/domain/model"
	"github.com/kou-isk/youcoder/internal/registry"
	"github.com/kou-isk/youcoder/internal/tracker"
	"github.com/kou-isk/youcoder/pkg/logger"
	"github.com/kou-isk/youcoder/pkg/metrics"
)

// Service owns the tagging session: the timeline tracker for the active
// video, the team registry, the storage fallback chain and the save queue.
type Service struct {
	mu sync.Mutex

	// Core components
	db        *sql.DB
	chain     *storage.Chain
	queue     *persist.Queue
	worker    *persist.Worker
	session   *tracker.TimelineSession
	teams     *registry.Registry
	playhead  *clock.Reported
	instance  string

	// Configuration
	dbPath           string
	sessionStorePath string
	saveMaxAttempts  int
	saveQueueSize    int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDBPath sets the sqlite database path for the primary tier.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithSessionStorePath sets the secondary tier's document path.
func WithSessionStorePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.sessionStorePath = path
		}
	}
}

// WithSaveMaxAttempts caps the fallible tiers tried per save.
func WithSaveMaxAttempts(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.saveMaxAttempts = n
		}
	}
}

// WithSaveQueueSize bounds the save queue.
func WithSaveQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.saveQueueSize = n
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	defaults := config.New()
	s := &Service{
		dbPath:           defaults.DBPath,
		sessionStorePath: defaults.SessionStorePath,
		saveMaxAttempts:  defaults.SaveMaxAttempts,
		saveQueueSize:    defaults.SaveQueueSize,
		playhead:         clock.NewReported(),
		instance:         uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting tagging service",
		logger.String("instance", s.instance),
	)

	db, err := storage.OpenDB(s.dbPath)
	if err != nil {
		return fmt.Errorf("open primary store: %w", err)
	}
	s.db = db

	s.chain = storage.NewChain(
		[]storage.Tier{
			storage.NewSQLiteTier(db),
			storage.NewSessionTier(s.sessionStorePath),
		},
		storage.WithMaxAttempts(s.saveMaxAttempts),
	)

	s.queue = persist.NewQueue(persist.WithCapacity(s.saveQueueSize))
	s.worker = persist.NewWorker(s.queue, s.chain)
	go s.worker.Run(ctx)

	s.session = tracker.New(
		tracker.WithClock(s.playhead),
		tracker.WithStore(s.chain),
		tracker.WithScheduler(persist.NewScheduler(s.queue)),
	)

	s.teams = registry.New(registry.WithStore(registry.NewSQLiteStore(db)))
	if err := s.teams.Restore(ctx); err != nil {
		s.logger.Error(ctx, "team registry restore failed", logger.Error(err))
	}

	s.started = true
	s.logger.Info(ctx, "tagging service started",
		logger.String("db", s.dbPath),
		logger.Int("saveMaxAttempts", s.saveMaxAttempts),
		logger.Int("saveQueueSize", s.saveQueueSize),
	)
	return nil
}

// Stop drains pending saves and releases resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping tagging service")

	if err := s.worker.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "persist worker shutdown failed", logger.Error(err))
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	s.started = false
	s.logger.Info(ctx, "tagging service stopped")
}

// SetVideo activates a video and loads its persisted timeline.
func (s *Service) SetVideo(ctx context.Context, videoID string) {
	s.session.SetVideo(ctx, videoID)
}

// ClearVideo drops the in-memory view on navigation away.
func (s *Service) ClearVideo(ctx context.Context) {
	s.session.ClearVideo(ctx)
}

// ActiveVideo returns the active video id, empty when none.
func (s *Service) ActiveVideo() string {
	return s.session.VideoID()
}

// ReportPosition records the latest playhead position in seconds.
func (s *Service) ReportPosition(seconds float64) {
	s.playhead.Set(seconds)
}

// StartAction opens a new record for (team, action).
func (s *Service) StartAction(ctx context.Context, team, action string) {
	s.session.StartAction(ctx, team, action)
}

// StopAction closes the latest open record for (team, action).
func (s *Service) StopAction(ctx context.Context, team, action string) {
	s.session.StopAction(ctx, team, action)
}

// AddLabel attaches a label to the latest open record for (team, action).
func (s *Service) AddLabel(ctx context.Context, team, action, label string) {
	s.session.AddLabel(ctx, team, action, label)
}

// DeleteAction removes the record matching all three fields exactly.
func (s *Service) DeleteAction(ctx context.Context, team, action string, start int64) bool {
	return s.session.DeleteAction(ctx, team, action, start)
}

// Actions returns a snapshot of the active timeline.
func (s *Service) Actions() []model.Action {
	return s.session.Actions()
}

// AddTeam registers a team name.
func (s *Service) AddTeam(ctx context.Context, name string) {
	s.teams.Add(ctx, name)
}

// RemoveTeam unregisters a team name; a no-op when absent.
func (s *Service) RemoveTeam(ctx context.Context, name string) {
	s.teams.Remove(ctx, name)
}

// Teams returns the team registry snapshot.
func (s *Service) Teams() []string {
	return s.teams.Teams()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	actions := s.session.Actions()
	open := s.session.OpenCount()
	teams := s.teams.Teams()

	metrics.UpdateTimelineSize(len(actions))
	metrics.UpdateTeamCount(len(teams))

	return map[string]interface{}{
		"instance":       s.instance,
		"activeVideo":    s.session.VideoID(),
		"actionCount":    len(actions),
		"openCount":      open,
		"teamCount":      len(teams),
		"saveQueueDepth": s.queue.Len(),
		"memoryOnly":     s.chain.Memory().Len(),
	}
}
