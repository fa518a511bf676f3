package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Reason tells a run why it was started.
type Reason string

const (
	ReasonStartup Reason = "startup"
	ReasonTick    Reason = "tick"
	ReasonManual  Reason = "manual"
)

// RunFunc performs one refresh cycle. It must return when ctx is done.
type RunFunc func(ctx context.Context, reason Reason)

// Scheduler runs a refresh once at start, then on every tick while enabled, and whenever
// Trigger is called. Runs never overlap: they all execute on the Start goroutine.
type Scheduler struct {
	Interval time.Duration
	Run      RunFunc
	Enabled  func() bool
	Logger   *zap.Logger

	trigger chan struct{}
}

func New(interval time.Duration, run RunFunc, enabled func() bool, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Interval: interval,
		Run:      run,
		Enabled:  enabled,
		Logger:   logger,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger requests a manual run. It never blocks; it returns false when a request is already pending.
func (s *Scheduler) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Start runs the loop in a goroutine. The returned channel is closed once the loop has exited.
func (s *Scheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.loop(ctx)
	}()
	return done
}

func (s *Scheduler) loop(ctx context.Context) {
	// Run immediately once at startup
	s.runOnce(ctx, ReasonStartup)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("scheduler stopped", zap.Error(ctx.Err()))
			return
		case <-ticker.C:
			if s.Enabled != nil && !s.Enabled() {
				s.Logger.Debug("auto refresh disabled, tick skipped")
				continue
			}
			s.runOnce(ctx, ReasonTick)
		case <-s.trigger:
			s.runOnce(ctx, ReasonManual)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, reason Reason) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	s.Run(ctx, reason)
	s.Logger.Debug("refresh run finished", zap.String("reason", string(reason)),
		zap.Duration("elapsed", time.Since(start)))
}
