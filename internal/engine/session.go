package engine

import (
	"time"

	"levelup/internal/period"
)

// session applies one mutation to a State at a fixed instant and collects
// the events it produces. It never touches storage.
type session struct {
	st     *State
	now    time.Time
	newID  func() string
	events []Event
	dirty  bool
}

func newSession(st *State, now time.Time, newID func() string) *session {
	return &session{st: st, now: now, newID: newID}
}

func (s *session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *session) today() string {
	return period.DateKey(s.now)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
