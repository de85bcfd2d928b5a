package capture

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// fakeStrategy is an independently scriptable strategy for cascade tests.
type fakeStrategy struct {
	id         string
	needsAct   bool
	attempt    Attempt
	calls      int
	sawPreAct  bool
	sawHandle  window.Handle
}

func (f *fakeStrategy) ID() string            { return f.id }
func (f *fakeStrategy) NeedsActivation() bool { return f.needsAct }
func (f *fakeStrategy) Capture(h window.Handle, opts Options) Attempt {
	f.calls++
	f.sawPreAct = opts.PreActivated
	f.sawHandle = h
	a := f.attempt
	a.StrategyID = f.id
	return a
}

type fakeActivator struct{ calls int }

func (f *fakeActivator) Activate(window.Handle) bool {
	f.calls++
	return true
}

type fakeRefresher struct{ bounds window.Rect }

func (f *fakeRefresher) Refresh(h window.Handle) window.Handle {
	h.Bounds = f.bounds
	return h
}

func goodAttempt() Attempt {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Pix[0] = 200 // non-blank
	return Attempt{Image: img}
}

func failedAttempt() Attempt {
	return Attempt{Err: errors.New("capture failed")}
}

func blankAttempt() Attempt {
	return Attempt{Image: image.NewRGBA(image.Rect(0, 0, 4, 4)), IsBlank: true}
}

func testWindow() window.Handle {
	return window.Handle{
		Title:     "Calculator",
		Bounds:    window.Rect{Left: 0, Top: 0, Width: 400, Height: 600},
		Visible:   true,
		HasBounds: true,
	}
}

func TestCascadeStopsAtFirstSuccess(t *testing.T) {
	first := &fakeStrategy{id: "first", attempt: failedAttempt()}
	second := &fakeStrategy{id: "generic_region_grab", attempt: goodAttempt()}
	third := &fakeStrategy{id: "third", attempt: goodAttempt()}

	c := NewCascade(t.TempDir(), []Strategy{first, second, third}, nil, nil)
	result := c.Run(testWindow(), ModeBackground, 0, PrefixAuto)

	if !result.Success {
		t.Fatalf("Expected success, got failure: %v", result.Errors())
	}
	if result.StrategyUsed != "generic_region_grab" {
		t.Errorf("Expected strategy_used generic_region_grab, got %s", result.StrategyUsed)
	}
	if third.calls != 0 {
		t.Error("Cascade must stop at first success")
	}
	if len(result.Attempts) != 2 {
		t.Errorf("Expected 2 attempts, got %d", len(result.Attempts))
	}
}

func TestCascadeBlankFrameIsNotSuccess(t *testing.T) {
	blank := &fakeStrategy{id: "blank", attempt: blankAttempt()}
	good := &fakeStrategy{id: "good", attempt: goodAttempt()}

	c := NewCascade(t.TempDir(), []Strategy{blank, good}, nil, nil)
	result := c.Run(testWindow(), ModeBackground, 0, PrefixAuto)

	if !result.Success {
		t.Fatalf("Expected the non-blank strategy to succeed")
	}
	if result.StrategyUsed != "good" {
		t.Errorf("Blank frame must not be the winning result, got %s", result.StrategyUsed)
	}
	if !result.Attempts[0].IsBlank {
		t.Error("First attempt should be recorded as blank")
	}
}

func TestCascadeAllFailedReportsEveryAttempt(t *testing.T) {
	strategies := []Strategy{
		&fakeStrategy{id: "a", attempt: failedAttempt()},
		&fakeStrategy{id: "b", attempt: failedAttempt()},
		&fakeStrategy{id: "c", attempt: failedAttempt()},
	}

	c := NewCascade(t.TempDir(), strategies, nil, nil)
	result := c.Run(testWindow(), ModeBackground, 0, PrefixAuto)

	if result.Success {
		t.Fatal("Expected failure when every strategy fails")
	}
	if len(result.Attempts) != BackgroundCapable(strategies) {
		t.Errorf("Expected %d attempts, got %d", BackgroundCapable(strategies), len(result.Attempts))
	}
	if len(result.Errors()) != 3 {
		t.Errorf("Expected 3 diagnostic messages, got %d", len(result.Errors()))
	}
}

func TestCascadeBackgroundSkipsActivationStrategies(t *testing.T) {
	fg := &fakeStrategy{id: "foreground_grab", needsAct: true, attempt: goodAttempt()}
	bg := &fakeStrategy{id: "generic_region_grab", attempt: goodAttempt()}

	c := NewCascade(t.TempDir(), []Strategy{fg, bg}, nil, nil)
	result := c.Run(testWindow(), ModeBackground, 0, PrefixBackground)

	if result.StrategyUsed != "generic_region_grab" {
		t.Errorf("Background mode must prefer background-capable strategies, used %s", result.StrategyUsed)
	}
	if fg.calls != 0 {
		t.Error("Activation-dependent strategy must not run while background strategies can succeed")
	}
}

func TestCascadeBackgroundLastResortActivates(t *testing.T) {
	bg := &fakeStrategy{id: "generic_region_grab", attempt: failedAttempt()}
	fg := &fakeStrategy{id: "foreground_grab", needsAct: true, attempt: goodAttempt()}
	activator := &fakeActivator{}
	refresher := &fakeRefresher{bounds: window.Rect{Left: 50, Top: 60, Width: 400, Height: 600}}

	c := NewCascade(t.TempDir(), []Strategy{bg, fg}, activator, refresher)
	result := c.Run(testWindow(), ModeBackground, 0, PrefixBackground)

	if !result.Success {
		t.Fatalf("Expected last-resort foreground fallback to succeed: %v", result.Errors())
	}
	if activator.calls != 1 {
		t.Errorf("Expected exactly one activation, got %d", activator.calls)
	}
	if !fg.sawPreAct {
		t.Error("Fallback strategy must see PreActivated=true")
	}
	if fg.sawHandle.Bounds.Left != 50 {
		t.Error("Bounds must be refreshed after activation, not reused from before")
	}
}

func TestCascadeForegroundActivatesOnceUpFront(t *testing.T) {
	s := &fakeStrategy{id: "generic_region_grab", attempt: goodAttempt()}
	activator := &fakeActivator{}
	refresher := &fakeRefresher{bounds: window.Rect{Left: 10, Top: 10, Width: 300, Height: 300}}

	c := NewCascade(t.TempDir(), []Strategy{s}, activator, refresher)
	result := c.Run(testWindow(), ModeForeground, 0, PrefixManual)

	if !result.Success {
		t.Fatal("Expected success")
	}
	if activator.calls != 1 {
		t.Errorf("Foreground mode must activate exactly once, got %d", activator.calls)
	}
	if s.sawHandle.Bounds.Left != 10 {
		t.Error("Strategies must receive refreshed bounds in foreground mode")
	}
}

func TestCascadeWritesPrefixedFile(t *testing.T) {
	dir := t.TempDir()
	s := &fakeStrategy{id: "good", attempt: goodAttempt()}

	c := NewCascade(dir, []Strategy{s}, nil, nil)
	c.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC) }
	result := c.Run(testWindow(), ModeBackground, 0, PrefixSilent)

	if !result.Success {
		t.Fatal("Expected success")
	}
	base := filepath.Base(result.ImagePath)
	if !strings.HasPrefix(base, "silent_20250601_123045_") {
		t.Errorf("Unexpected filename %s", base)
	}
	info, err := os.Stat(result.ImagePath)
	if err != nil {
		t.Fatalf("Saved image missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Saved image is empty")
	}
}

func TestCascadeContinuesAfterSaveFailure(t *testing.T) {
	// A path that is a regular file, so creating the screenshots directory
	// fails and every save errors out.
	notADir := filepath.Join(t.TempDir(), "screenshots")
	if err := os.WriteFile(notADir, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}

	first := &fakeStrategy{id: "first", attempt: goodAttempt()}
	second := &fakeStrategy{id: "second", attempt: goodAttempt()}

	c := NewCascade(notADir, []Strategy{first, second}, nil, nil)
	result := c.Run(testWindow(), ModeBackground, 0, PrefixAuto)

	if result.Success {
		t.Fatal("Expected failure when no frame can be written")
	}
	if second.calls != 1 {
		t.Error("A save failure must not stop later strategies from trying")
	}
	if len(result.Attempts) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(result.Attempts))
	}
	for _, a := range result.Attempts {
		if a.Err == nil {
			t.Error("Save failure must be visible in the attempt diagnostics")
		}
	}
}

func TestCascadeManualCaptureUsesSubdirectory(t *testing.T) {
	dir := t.TempDir()
	s := &fakeStrategy{id: "good", attempt: goodAttempt()}

	c := NewCascade(dir, []Strategy{s}, nil, nil)
	result := c.Run(testWindow(), ModeBackground, 0, PrefixManual)

	if !result.Success {
		t.Fatalf("Expected success: %v", result.Errors())
	}
	if filepath.Base(filepath.Dir(result.ImagePath)) != "manual_captures" {
		t.Errorf("Manual capture should land in manual_captures/, got %s", result.ImagePath)
	}
	if _, err := os.Stat(result.ImagePath); err != nil {
		t.Fatalf("Saved image missing: %v", err)
	}

	// Auto captures stay at the top level.
	auto := c.Run(testWindow(), ModeBackground, 0, PrefixAuto)
	if filepath.Dir(auto.ImagePath) != dir {
		t.Errorf("Auto capture should stay in the screenshots dir, got %s", auto.ImagePath)
	}
}

func TestCascadeRecoversFromStrategyPanic(t *testing.T) {
	panics := panicStrategy{}
	good := &fakeStrategy{id: "good", attempt: goodAttempt()}

	c := NewCascade(t.TempDir(), []Strategy{panics, good}, nil, nil)
	result := c.Run(testWindow(), ModeBackground, 0, PrefixAuto)

	if !result.Success {
		t.Fatal("Cascade must survive a panicking strategy")
	}
	if result.Attempts[0].Err == nil {
		t.Error("Panic must be recorded as a failed attempt")
	}
}

type panicStrategy struct{}

func (panicStrategy) ID() string            { return "panics" }
func (panicStrategy) NeedsActivation() bool { return false }
func (panicStrategy) Capture(window.Handle, Options) Attempt {
	panic("os api exploded")
}
