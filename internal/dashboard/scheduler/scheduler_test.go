package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recorder struct {
	mu      sync.Mutex
	reasons []Reason
	ran     chan Reason
}

func newRecorder() *recorder {
	return &recorder{ran: make(chan Reason, 64)}
}

func (r *recorder) run(_ context.Context, reason Reason) {
	r.mu.Lock()
	r.reasons = append(r.reasons, reason)
	r.mu.Unlock()
	r.ran <- reason
}

func (r *recorder) count(reason Reason) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.reasons {
		if got == reason {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, ch <-chan Reason, want Reason) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s run", want)
		}
	}
}

// go test -v --run TestSchedulerStartupAndTicks
func TestSchedulerStartupAndTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := newRecorder()
	s := New(10*time.Millisecond, rec.run, func() bool { return true }, zap.NewNop())
	done := s.Start(ctx)

	waitFor(t, rec.ran, ReasonStartup)
	waitFor(t, rec.ran, ReasonTick)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	if rec.count(ReasonStartup) != 1 {
		t.Errorf("expected one startup run, got %d", rec.count(ReasonStartup))
	}
}

// go test -v --run TestSchedulerDisabledSkipsTicks
func TestSchedulerDisabledSkipsTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var enabled atomic.Bool
	rec := newRecorder()
	s := New(5*time.Millisecond, rec.run, enabled.Load, zap.NewNop())
	done := s.Start(ctx)

	waitFor(t, rec.ran, ReasonStartup)
	time.Sleep(50 * time.Millisecond)
	if n := rec.count(ReasonTick); n != 0 {
		t.Errorf("expected no tick runs while disabled, got %d", n)
	}

	// manual refresh works regardless of the toggle
	if !s.Trigger() {
		t.Fatal("trigger rejected")
	}
	waitFor(t, rec.ran, ReasonManual)

	enabled.Store(true)
	waitFor(t, rec.ran, ReasonTick)

	cancel()
	<-done
}

// go test -v --run TestTriggerCoalesces
func TestTriggerCoalesces(t *testing.T) {
	s := New(time.Hour, func(context.Context, Reason) {}, nil, zap.NewNop())
	if !s.Trigger() {
		t.Fatal("first trigger should be accepted")
	}
	if s.Trigger() {
		t.Error("second trigger should coalesce with the pending one")
	}
}

// go test -v --run TestSchedulerCancelledBeforeStart
func TestSchedulerCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := newRecorder()
	s := New(time.Millisecond, rec.run, nil, zap.NewNop())
	<-s.Start(ctx)

	if len(rec.reasons) != 0 {
		t.Errorf("expected no runs on a cancelled context, got %v", rec.reasons)
	}
}
