// Package viewstate holds the per-view load state machine and the
// request sequencing that makes the newest fetch win. Each coordinated
// view on the dashboard owns one Tracker; a range change begins a new
// request on every tracker involved, and any response carrying an older
// token is dropped without touching the view.
package viewstate

import "sync"

// Phase is the lifecycle state of a view's data.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// Tracker is a latest-request-wins state machine for one view. Begin
// hands out monotonically increasing tokens; only the completion
// carrying the newest token may transition the phase.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	phase  Phase
	errMsg string
}

// NewTracker starts in the loading phase, matching a view that has
// never fetched.
func NewTracker() *Tracker {
	return &Tracker{phase: PhaseLoading}
}

// Begin registers a new in-flight request and returns its token.
// Any earlier in-flight request is implicitly superseded.
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.phase = PhaseLoading
	t.errMsg = ""
	return t.seq
}

// Complete marks the request identified by token as loaded. It reports
// false, leaving the phase untouched, when a newer request has begun
// since the token was issued.
func (t *Tracker) Complete(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.seq {
		return false
	}
	t.phase = PhaseLoaded
	t.errMsg = ""
	return true
}

// Fail marks the request identified by token as failed with a display
// message. Stale failures are dropped the same way stale completions
// are, so an old request's error can never clobber newer data.
func (t *Tracker) Fail(token uint64, msg string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.seq {
		return false
	}
	t.phase = PhaseFailed
	t.errMsg = msg
	return true
}

// Phase returns the current lifecycle phase.
func (t *Tracker) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Err returns the display message from the most recent failure, or ""
// when the view is not failed.
func (t *Tracker) Err() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errMsg
}
