package tracker

import (
	"github.com/kou-isk/youcoder/internal/clock"
	"github.com/kou-isk/youcoder/pkg/logger"
)

// Option applies a configuration option to the TimelineSession.
type Option func(*TimelineSession)

// WithClock sets the playback position source.
func WithClock(c clock.Source) Option {
	return func(s *TimelineSession) {
		s.clock = c
	}
}

// WithStore sets the timeline loader used when a video becomes active.
func WithStore(st Store) Option {
	return func(s *TimelineSession) {
		s.store = st
	}
}

// WithScheduler sets the fire-and-forget persistence scheduler.
func WithScheduler(sc SaveScheduler) Option {
	return func(s *TimelineSession) {
		s.scheduler = sc
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *TimelineSession) {
		if l != nil {
			s.logger = l
		}
	}
}
