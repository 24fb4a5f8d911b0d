package loginguard

import (
	"testing"
	"time"
)

func guardAt(now *time.Time) *Guard {
	return &Guard{Now: func() time.Time { return *now }}
}

func TestRecordFailure_LocksAtThreshold(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g := guardAt(&now)

	st := State{}
	var status Status

	for i := 1; i < FailThreshold; i++ {
		st, status = g.RecordFailure(st)
		if status.Locked {
			t.Fatalf("locked after %d failures, want threshold %d", i, FailThreshold)
		}
		if status.FailCount != i {
			t.Fatalf("fail count = %d, want %d", status.FailCount, i)
		}
	}

	st, status = g.RecordFailure(st)
	if !status.Locked {
		t.Fatalf("expected lock after %d failures", FailThreshold)
	}
	if status.Remaining <= 0 || status.Remaining > LockDuration {
		t.Fatalf("remaining = %v, want within (0, %v]", status.Remaining, LockDuration)
	}
}

func TestLockedAttempts_DoNotAccumulateAndRemainingShrinks(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g := guardAt(&now)

	st := State{}
	for i := 0; i < FailThreshold+1; i++ {
		st, _ = g.RecordFailure(st)
	}
	_, first := g.Evaluate(st)
	if !first.Locked {
		t.Fatalf("expected locked state")
	}
	if st.FailCount != FailThreshold {
		t.Fatalf("failures accumulated while locked: %d", st.FailCount)
	}

	now = now.Add(30 * time.Second)
	st, second := g.RecordFailure(st)
	if !second.Locked {
		t.Fatalf("expected still locked inside the window")
	}
	if second.Remaining > first.Remaining {
		t.Fatalf("remaining grew: %v > %v", second.Remaining, first.Remaining)
	}
}

func TestLockExpiry_SelfResets(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g := guardAt(&now)

	st := State{}
	for i := 0; i < FailThreshold; i++ {
		st, _ = g.RecordFailure(st)
	}

	now = now.Add(LockDuration)
	st, status := g.Evaluate(st)
	if status.Locked {
		t.Fatalf("expected unlock at expiry")
	}
	if status.FailCount != 0 || st.FailCount != 0 {
		t.Fatalf("fail count not reset: %d", st.FailCount)
	}
	if !st.LockUntil.IsZero() {
		t.Fatalf("lock timestamp not cleared")
	}
}

func TestReset_Unconditional(t *testing.T) {
	g := New()
	st := g.Reset()
	if st.FailCount != 0 || !st.LockUntil.IsZero() {
		t.Fatalf("reset state not clean: %+v", st)
	}
}
