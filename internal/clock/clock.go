// Package clock abstracts the video playback position source.
//
// The tracker never talks to a player directly; the extension UI reports the
// playhead and the tracker reads it through Source at mutation time.
package clock

import (
	"math"
	"sync"
)

// Source exposes the current playback position in seconds.
type Source interface {
	PositionSeconds() float64
}

// Milliseconds converts a playback position in seconds to integer
// milliseconds, truncating toward zero the way the recording UI does.
func Milliseconds(seconds float64) int64 {
	return int64(math.Floor(seconds * 1000))
}

// Reported is a Source fed by an external collaborator (the extension UI
// reporting the player's current time). The zero value reads as position 0,
// matching the "absent video clock" behavior.
type Reported struct {
	mu      sync.RWMutex
	seconds float64
}

// NewReported returns a Reported source starting at position 0.
func NewReported() *Reported {
	return &Reported{}
}

// Set records the latest reported playhead position.
func (r *Reported) Set(seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seconds = seconds
}

// PositionSeconds returns the most recently reported position.
func (r *Reported) PositionSeconds() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seconds
}
