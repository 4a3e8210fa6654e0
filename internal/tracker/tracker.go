// Package tracker implements the per-video action timeline session.
//
// A TimelineSession is an explicit context object: the in-memory action list
// is the single source of truth while a video is active, and persistence is
// a write-through concern scheduled after every mutation. Multiple
// independent sessions can coexist, which keeps the tracker unit-testable.
package tracker

import (
	"context"
	"sync"

	"github.com/kou-isk/youcoder/internal/clock"
	"github.com/kou-isk/youcoder/internal/domain/model"
	"github.com/kou-isk/youcoder/pkg/logger"
	"github.com/kou-isk/youcoder/pkg/metrics"
)

// Store loads a persisted timeline when a video becomes active.
type Store interface {
	Load(ctx context.Context, videoID string) []model.Action
}

// SaveScheduler receives fire-and-forget persistence requests. Mutating
// callers never wait for the fallback chain; the scheduler decides when the
// save actually runs.
type SaveScheduler interface {
	Schedule(videoID string, actions []model.Action)
}

// TimelineSession tracks the ordered action records for the active video.
// All mutations are serialized behind a mutex, mirroring the run-to-
// completion semantics the recording UI relies on.
type TimelineSession struct {
	mu      sync.Mutex
	videoID string
	actions []model.Action

	clock     clock.Source
	store     Store
	scheduler SaveScheduler
	logger    logger.Logger
}

// New constructs a session with no active video.
func New(opts ...Option) *TimelineSession {
	s := &TimelineSession{
		logger: logger.Get().Named("tracker"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetVideo makes videoID the active video and loads its persisted timeline
// into memory. A timeline is created empty on first visit.
func (s *TimelineSession) SetVideo(ctx context.Context, videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.videoID = videoID
	s.actions = nil
	if s.store != nil && videoID != "" {
		s.actions = model.CloneTimeline(s.store.Load(ctx, videoID))
	}
	s.logger.Info(ctx, "video activated",
		logger.String("videoID", videoID),
		logger.Int("actions", len(s.actions)),
	)
}

// ClearVideo drops the in-memory view when navigating away. Persistent
// storage keeps whatever was last saved.
func (s *TimelineSession) ClearVideo(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoID = ""
	s.actions = nil
}

// VideoID returns the active video identifier, empty when none is active.
func (s *TimelineSession) VideoID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoID
}

// StartAction appends a new open record at the current playback position.
// Starting the same (team, action) again while one is still open creates an
// additional, independent record; duplicates are intentional.
func (s *TimelineSession) StartAction(ctx context.Context, team, action string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.actions = append(s.actions, model.Action{
		Team:   team,
		Action: action,
		Start:  s.positionMs(),
		Labels: []string{},
	})
	metrics.RecordActionStarted()
	s.scheduleSave()
}

// StopAction closes the most recently added open record matching team and
// action. A miss is a recoverable no-op: UI races (double-click, stale
// state) routinely produce it.
func (s *TimelineSession) StopAction(ctx context.Context, team, action string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.latestOpen(team, action)
	if idx < 0 {
		metrics.RecordLookupMiss("stop")
		s.logger.Warn(ctx, "no open action to stop",
			logger.String("team", team),
			logger.String("action", action),
		)
		return
	}
	// End may land before Start when the user seeked backwards; recorded
	// as-is, not clamped.
	s.actions[idx].Close(s.positionMs())
	metrics.RecordActionStopped()
	s.scheduleSave()
}

// AddLabel appends label to the most recently added open record matching
// team and action. Duplicate labels within one record are allowed. Closed
// records cannot be labeled through this interface: the open-record lookup
// rule silently rejects them, same as a stop miss.
func (s *TimelineSession) AddLabel(ctx context.Context, team, action, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.latestOpen(team, action)
	if idx < 0 {
		metrics.RecordLookupMiss("label")
		s.logger.Warn(ctx, "no open action to label",
			logger.String("team", team),
			logger.String("action", action),
			logger.String("label", label),
		)
		return
	}
	s.actions[idx].Labels = append(s.actions[idx].Labels, label)
	metrics.RecordLabelAttached()
	s.scheduleSave()
}

// DeleteAction removes the record matching team, action and start exactly;
// start disambiguates between records sharing team and action. Returns false
// without mutation when no record matches, so a caller can roll back
// optimistic UI state.
func (s *TimelineSession) DeleteAction(ctx context.Context, team, action string, start int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.actions {
		a := &s.actions[i]
		if a.Team == team && a.Action == action && a.Start == start {
			s.actions = append(s.actions[:i], s.actions[i+1:]...)
			metrics.RecordActionDeleted()
			s.scheduleSave()
			return true
		}
	}
	return false
}

// Actions returns a deep-copied snapshot of the current timeline.
func (s *TimelineSession) Actions() []model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.actions == nil {
		return []model.Action{}
	}
	return model.CloneTimeline(s.actions)
}

// OpenCount reports how many records are still in progress.
func (s *TimelineSession) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range s.actions {
		if s.actions[i].IsOpen() {
			n++
		}
	}
	return n
}

// latestOpen returns the index of the most recently added open record for
// (team, action), or -1. Must be called with s.mu held.
func (s *TimelineSession) latestOpen(team, action string) int {
	for i := len(s.actions) - 1; i >= 0; i-- {
		a := &s.actions[i]
		if a.Team == team && a.Action == action && a.IsOpen() {
			return i
		}
	}
	return -1
}

// positionMs reads the video clock, treating an absent source as position 0.
// Must be called with s.mu held.
func (s *TimelineSession) positionMs() int64 {
	if s.clock == nil {
		return 0
	}
	return clock.Milliseconds(s.clock.PositionSeconds())
}

// scheduleSave hands the current timeline to the scheduler without waiting.
// Must be called with s.mu held.
func (s *TimelineSession) scheduleSave() {
	if s.scheduler == nil || s.videoID == "" {
		return
	}
	s.scheduler.Schedule(s.videoID, model.CloneTimeline(s.actions))
}
