package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anas-gulzar-dev/grace-capture/internal/capture"
	"github.com/anas-gulzar-dev/grace-capture/internal/export"
	"github.com/anas-gulzar-dev/grace-capture/internal/logger"
	"github.com/anas-gulzar-dev/grace-capture/internal/stability"
	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// State is the scheduler's lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// minInterval is the smallest accepted capture interval. It doubles as the
// stop-check granularity: a stop request takes effect within one interval
// slice of this size.
const minInterval = time.Second

// CycleFunc is notified after every automatic cycle, successful or not. err
// is nil on success; record is valid only then.
type CycleFunc func(cycle int, record export.Record, err error)

// Scheduler drives the pipeline at a fixed interval. Each cycle waits the
// full interval first, then captures, so a run bounded to 12s at a 5s
// interval performs exactly two captures.
type Scheduler struct {
	mu      sync.Mutex
	state   State
	stopCh  chan struct{}
	doneCh  chan struct{}
	cycles  int
	lastErr error

	pipeline *Pipeline
	cleanup  func() (int, error)

	// OnCycle, when set, is called from the scheduler goroutine.
	OnCycle CycleFunc

	// Sleep is replaceable in tests.
	Sleep func(time.Duration)
}

// New creates an idle scheduler over the pipeline. cleanup may be nil to
// disable periodic retention passes.
func New(pipeline *Pipeline, cleanup func() (int, error)) *Scheduler {
	return &Scheduler{
		state:    StateIdle,
		pipeline: pipeline,
		cleanup:  cleanup,
		Sleep:    time.Sleep,
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cycles returns the number of completed cycles of the current or last run.
func (s *Scheduler) Cycles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycles
}

// LastError returns the most recent cycle error, cleared by a successful
// cycle.
func (s *Scheduler) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Start begins automatic capture of the window. interval must be at least
// one second. duration, when positive, bounds the run to floor(duration /
// interval) cycles; zero means run until Stop. Returns an error when a run
// is already active.
func (s *Scheduler) Start(h window.Handle, mode capture.Mode, interval, duration time.Duration) error {
	if h.Title == "" {
		return fmt.Errorf("no window selected")
	}
	if interval < minInterval {
		return fmt.Errorf("capture interval must be at least %v, got %v", minInterval, interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		return fmt.Errorf("auto-capture already running")
	}

	maxCycles := 0
	if duration > 0 {
		maxCycles = int(duration / interval)
	}

	s.state = StateRunning
	s.cycles = 0
	s.lastErr = nil
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	logger.Info("Auto-capture started for %q (interval %v)", h.Title, interval)
	go s.run(h, mode, interval, maxCycles, s.stopCh, s.doneCh)
	return nil
}

// Stop requests the current run to end and blocks until the scheduler
// goroutine has exited. Takes effect within one second even mid-wait. A
// no-op when idle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	select {
	case <-stopCh:
	default:
		close(stopCh)
	}
	<-doneCh
}

func (s *Scheduler) run(h window.Handle, mode capture.Mode, interval time.Duration, maxCycles int, stopCh, doneCh chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		logger.Info("Auto-capture stopped after %d cycles", s.Cycles())
		close(doneCh)
	}()

	cycle := 0
	for {
		if !s.wait(interval, stopCh) {
			return
		}

		record, err := s.pipeline.Process(context.Background(), h, mode, capture.PrefixAuto)
		cycle++

		s.mu.Lock()
		s.cycles = cycle
		s.lastErr = err
		s.mu.Unlock()

		if err != nil {
			// One bad cycle (blank frame, expired key) never stops the loop.
			logger.Error("Capture cycle %d failed: %v", cycle, err)
		}
		if cb := s.OnCycle; cb != nil {
			cb(cycle, record, err)
		}

		s.maybeCleanup(cycle)

		if maxCycles > 0 && cycle >= maxCycles {
			return
		}
	}
}

// wait sleeps for the interval in one-second slices, returning false as soon
// as a stop is requested.
func (s *Scheduler) wait(interval time.Duration, stopCh chan struct{}) bool {
	remaining := interval
	for remaining > 0 {
		select {
		case <-stopCh:
			return false
		default:
		}
		step := minInterval
		if remaining < step {
			step = remaining
		}
		s.Sleep(step)
		remaining -= step
	}
	select {
	case <-stopCh:
		return false
	default:
		return true
	}
}

func (s *Scheduler) maybeCleanup(cycle int) {
	if s.cleanup == nil {
		return
	}
	gov := s.pipeline.Governor
	if cycle%gov.CleanupFrequency() != 0 {
		return
	}
	if gov.ShouldSkip(stability.OpCleanup) {
		logger.Debug("Cleanup skipped (recent error cooldown)")
		return
	}
	err := gov.Guard(stability.OpCleanup, func() error {
		deleted, cerr := s.cleanup()
		if deleted > 0 {
			logger.Info("Cleanup removed %d old screenshots", deleted)
		}
		return cerr
	})
	if err != nil {
		logger.Warn("Cleanup failed: %v", err)
	}
}
