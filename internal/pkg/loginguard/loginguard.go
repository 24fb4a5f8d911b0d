package loginguard

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys and lockout policy for the staff login form.
const (
	failCountKey = "admin_login_fail_count"
	lockUntilKey = "admin_login_lock_until"

	FailThreshold = 3
	LockDuration  = 2 * time.Minute
)

// State is the explicit per-session guard state. It is loaded from and
// stored back to the browser session, never kept in process globals.
type State struct {
	FailCount int
	LockUntil time.Time // zero when unlocked
}

// Status is what request handling sees after evaluating the state.
type Status struct {
	Locked    bool
	FailCount int
	Remaining time.Duration
}

// Guard evaluates and mutates login-attempt state. The clock is
// injectable for tests.
type Guard struct {
	Now func() time.Time
}

// New returns a guard using the wall clock.
func New() *Guard {
	return &Guard{Now: time.Now}
}

// Evaluate resolves the current status and self-resets an expired lock:
// at or after the unlock timestamp the state returns to unlocked with the
// failure count zeroed. The (possibly reset) state is returned alongside.
func (g *Guard) Evaluate(st State) (State, Status) {
	now := g.Now()
	if !st.LockUntil.IsZero() {
		if now.Before(st.LockUntil) {
			return st, Status{
				Locked:    true,
				FailCount: st.FailCount,
				Remaining: st.LockUntil.Sub(now),
			}
		}
		// Lock expired: reset.
		st = State{}
	}
	return st, Status{FailCount: st.FailCount}
}

// RecordFailure registers one failed attempt. Failures while locked do
// not accumulate; reaching the threshold sets an absolute unlock time.
func (g *Guard) RecordFailure(st State) (State, Status) {
	st, status := g.Evaluate(st)
	if status.Locked {
		return st, status
	}

	st.FailCount++
	if st.FailCount >= FailThreshold {
		st.LockUntil = g.Now().Add(LockDuration)
	}
	return g.Evaluate(st)
}

// Reset clears the state unconditionally, for successful authentication.
func (g *Guard) Reset() State {
	return State{}
}

// Load reads the guard state from a session.
func Load(sess *session.Session) State {
	st := State{}
	if v, ok := sess.Get(failCountKey).(int); ok {
		st.FailCount = v
	}
	if v, ok := sess.Get(lockUntilKey).(string); ok && v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			st.LockUntil = t
		}
		// Unparseable timestamps are dropped, same as a missing lock.
	}
	return st
}

// Store writes the guard state back to a session.
func Store(sess *session.Session, st State) {
	sess.Set(failCountKey, st.FailCount)
	if st.LockUntil.IsZero() {
		sess.Delete(lockUntilKey)
	} else {
		sess.Set(lockUntilKey, st.LockUntil.Format(time.RFC3339))
	}
}
