// Package model contains domain models passed between layers.
package model

// Action represents one timed, labeled event tied to a team and an action
// type. Fields mirror the JSON record persisted per video.
//
// The open/closed distinction is carried by End: a nil End means the action
// is still in progress. All open/closed checks must go through IsOpen so the
// encoding is not re-derived ad hoc elsewhere.
type Action struct {
	Team   string   `json:"team"`
	Action string   `json:"action"`
	Start  int64    `json:"start"`         // milliseconds of video playback position
	End    *int64   `json:"end,omitempty"` // nil while the action is open
	Labels []string `json:"labels"`        // insertion order is significant
}

// IsOpen reports whether the action has not been stopped yet.
func (a *Action) IsOpen() bool {
	return a.End == nil
}

// Close sets the end timestamp. End may legitimately be earlier than Start
// when the playhead was seeked backwards between start and stop; the value is
// recorded as-is.
func (a *Action) Close(endMs int64) {
	end := endMs
	a.End = &end
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the tracker's internal label slices.
func (a *Action) Clone() Action {
	c := Action{
		Team:   a.Team,
		Action: a.Action,
		Start:  a.Start,
	}
	if a.End != nil {
		end := *a.End
		c.End = &end
	}
	if a.Labels != nil {
		c.Labels = make([]string, len(a.Labels))
		copy(c.Labels, a.Labels)
	}
	return c
}

// CloneTimeline deep-copies a whole timeline.
func CloneTimeline(actions []Action) []Action {
	if actions == nil {
		return nil
	}
	out := make([]Action, len(actions))
	for i := range actions {
		out[i] = actions[i].Clone()
	}
	return out
}
