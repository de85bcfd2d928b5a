// Package stability paces file I/O around a USB-tethered capture target.
// Rapid write/delete churn during auto-capture can drop the USB link on
// sensitive devices; the governor inserts delays, limits concurrency and
// escalates to conservative timings after repeated failures.
package stability

import (
	"strings"
	"sync"
	"time"
)

// OperationKind classifies a guarded file-system operation.
type OperationKind string

const (
	OpFileWrite  OperationKind = "file_write"
	OpFileDelete OperationKind = "file_delete"
	OpCleanup    OperationKind = "cleanup"
	OpOCRProcess OperationKind = "ocr_process"
)

// Mode is the governor's current pacing profile.
type Mode string

const (
	// ModeStable uses conservative delays; the default.
	ModeStable Mode = "stable"
	// ModeFast reduces delays for known-stable devices.
	ModeFast Mode = "fast"
)

const (
	// errorThreshold failures force the governor back to stable mode.
	errorThreshold = 3
	// errorCooldown is the window after an error during which skippable
	// operations are suppressed.
	errorCooldown = 30 * time.Second
)

func stableDelays() map[OperationKind]time.Duration {
	return map[OperationKind]time.Duration{
		OpFileWrite:  300 * time.Millisecond,
		OpFileDelete: 800 * time.Millisecond,
		OpCleanup:    2 * time.Second,
		OpOCRProcess: 500 * time.Millisecond,
	}
}

func fastDelays() map[OperationKind]time.Duration {
	return map[OperationKind]time.Duration{
		OpFileWrite:  100 * time.Millisecond,
		OpFileDelete: 200 * time.Millisecond,
		OpCleanup:    500 * time.Millisecond,
		OpOCRProcess: 100 * time.Millisecond,
	}
}

// Governor is explicitly owned by the scheduler/cleanup pair; construct one
// per process (or per test) and pass it in. There is no ambient instance.
type Governor struct {
	mu            sync.Mutex
	mode          Mode
	delays        map[OperationKind]time.Duration
	maxConcurrent int
	sem           chan struct{}
	errorCount    int
	lastErrorTime time.Time
	profiles      []DeviceProfile

	// Sleep and Now are replaceable in tests.
	Sleep func(time.Duration)
	Now   func() time.Time
}

// NewGovernor creates a governor in stable mode with conservative delays.
func NewGovernor() *Governor {
	g := &Governor{
		mode:          ModeStable,
		delays:        stableDelays(),
		maxConcurrent: 1,
		profiles:      defaultProfiles(),
		Sleep:         time.Sleep,
		Now:           time.Now,
	}
	g.sem = make(chan struct{}, g.maxConcurrent)
	return g
}

// Mode returns the current pacing mode.
func (g *Governor) Mode() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

// ErrorCount returns the consecutive failure count.
func (g *Governor) ErrorCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.errorCount
}

// ForceStable switches to conservative delays and single-operation
// concurrency.
func (g *Governor) ForceStable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setModeLocked(ModeStable)
}

// EnableFast reduces delays for faster operation on stable devices.
func (g *Governor) EnableFast() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setModeLocked(ModeFast)
}

func (g *Governor) setModeLocked(m Mode) {
	g.mode = m
	if m == ModeStable {
		g.delays = stableDelays()
		g.maxConcurrent = 1
	} else {
		g.delays = fastDelays()
		g.maxConcurrent = 3
	}
	g.sem = make(chan struct{}, g.maxConcurrent)
}

// Guard wraps a file-system operation with a pre-operation delay, a
// post-operation delay of half that duration, and concurrency limiting.
// A failure increments the error counter and, at the threshold, forces
// stable mode; the triggering error is returned to the caller, never
// swallowed.
func (g *Governor) Guard(kind OperationKind, fn func() error) error {
	g.mu.Lock()
	delay := g.delays[kind]
	sem := g.sem
	g.mu.Unlock()

	sem <- struct{}{}
	defer func() { <-sem }()

	g.Sleep(delay)
	err := fn()
	g.Sleep(delay / 2)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.errorCount++
		g.lastErrorTime = g.Now()
		if g.errorCount >= errorThreshold {
			g.setModeLocked(ModeStable)
		}
		return err
	}
	g.errorCount = 0
	return nil
}

// ShouldSkip reports whether the operation should be skipped entirely this
// cycle: deletes are skipped in stable mode, and any operation is skipped
// within the cool-down window after a recorded error. Callers consult this
// before deciding to clean up at all, independent of Guard.
func (g *Governor) ShouldSkip(kind OperationKind) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.mode != ModeStable {
		return false
	}
	if g.errorCount > 0 && g.Now().Sub(g.lastErrorTime) < errorCooldown {
		return true
	}
	if kind == OpFileDelete {
		return true
	}
	return false
}

// CleanupFrequency returns how many capture cycles should elapse between
// cleanup passes under the current mode.
func (g *Governor) CleanupFrequency() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode == ModeStable {
		return 20
	}
	return 10
}

// OptimizeFor tunes delay presets for recognized device-name keyword
// families. A heuristic hook, not a correctness requirement.
func (g *Governor) OptimizeFor(deviceTitle string) {
	title := strings.ToLower(deviceTitle)

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.profiles {
		if !p.matches(title) {
			continue
		}
		if p.Mode != "" {
			g.setModeLocked(p.Mode)
		}
		if p.DeleteDelay > 0 {
			g.delays[OpFileDelete] = p.DeleteDelay
		}
		return
	}
}

// StatusMessage returns a short human-readable governor status.
func (g *Governor) StatusMessage() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode == ModeStable {
		return "USB stability mode: active"
	}
	return "fast mode: active"
}
