package stability

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// newTestGovernor returns a governor with sleeping disabled and a
// controllable clock.
func newTestGovernor() (*Governor, *time.Time) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	g := NewGovernor()
	g.Sleep = func(time.Duration) {}
	g.Now = func() time.Time { return now }
	return g, &now
}

func TestGuardEscalatesToStableAfterThreeFailures(t *testing.T) {
	g, _ := newTestGovernor()
	g.EnableFast()

	boom := errors.New("disk write failed")
	for i := 0; i < 3; i++ {
		err := g.Guard(OpFileWrite, func() error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("Guard must not swallow the triggering error, got %v", err)
		}
	}

	if g.Mode() != ModeStable {
		t.Errorf("Expected mode stable after 3 failures, got %s", g.Mode())
	}
	if g.ErrorCount() != 3 {
		t.Errorf("Expected error count 3, got %d", g.ErrorCount())
	}
}

func TestGuardResetsErrorCountOnSuccess(t *testing.T) {
	g, _ := newTestGovernor()

	g.Guard(OpFileWrite, func() error { return errors.New("once") })
	if g.ErrorCount() != 1 {
		t.Fatalf("Expected error count 1, got %d", g.ErrorCount())
	}

	if err := g.Guard(OpFileWrite, func() error { return nil }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.ErrorCount() != 0 {
		t.Errorf("Success must reset error count, got %d", g.ErrorCount())
	}
}

func TestGuardAppliesPreAndPostDelays(t *testing.T) {
	g, _ := newTestGovernor()
	var slept []time.Duration
	g.Sleep = func(d time.Duration) { slept = append(slept, d) }

	g.Guard(OpCleanup, func() error { return nil })

	if len(slept) != 2 {
		t.Fatalf("Expected pre and post delays, got %d sleeps", len(slept))
	}
	if slept[1] != slept[0]/2 {
		t.Errorf("Post delay must be half the pre delay: pre=%v post=%v", slept[0], slept[1])
	}
}

func TestShouldSkipDeletesInStableMode(t *testing.T) {
	g, _ := newTestGovernor()

	if !g.ShouldSkip(OpFileDelete) {
		t.Error("Deletes must be skipped in stable mode")
	}
	if g.ShouldSkip(OpCleanup) {
		t.Error("Cleanup should not be skipped without recent errors")
	}

	g.EnableFast()
	if g.ShouldSkip(OpFileDelete) {
		t.Error("Deletes should proceed in fast mode")
	}
}

func TestShouldSkipDuringErrorCooldown(t *testing.T) {
	g, now := newTestGovernor()

	g.Guard(OpFileWrite, func() error { return errors.New("boom") })

	if !g.ShouldSkip(OpFileWrite) {
		t.Error("Operations must be skipped right after an error")
	}

	*now = now.Add(31 * time.Second)
	if g.ShouldSkip(OpFileWrite) {
		t.Error("Skip window must close after the cool-down elapses")
	}
}

func TestCleanupFrequencyFollowsMode(t *testing.T) {
	g, _ := newTestGovernor()

	if got := g.CleanupFrequency(); got != 20 {
		t.Errorf("Expected stable cleanup frequency 20, got %d", got)
	}
	g.EnableFast()
	if got := g.CleanupFrequency(); got != 10 {
		t.Errorf("Expected fast cleanup frequency 10, got %d", got)
	}
}

func TestOptimizeForXiaomiForcesStable(t *testing.T) {
	g, _ := newTestGovernor()
	g.EnableFast()

	g.OptimizeFor("Mi Band 6 - scrcpy")

	if g.Mode() != ModeStable {
		t.Errorf("Xiaomi family must force stable mode, got %s", g.Mode())
	}
	g.mu.Lock()
	delay := g.delays[OpFileDelete]
	g.mu.Unlock()
	if delay != time.Second {
		t.Errorf("Expected 1s delete delay for Xiaomi family, got %v", delay)
	}
}

func TestOptimizeForSamsungRelaxesDeleteDelay(t *testing.T) {
	g, _ := newTestGovernor()

	g.OptimizeFor("Samsung Galaxy Watch")

	g.mu.Lock()
	delay := g.delays[OpFileDelete]
	g.mu.Unlock()
	if delay != 300*time.Millisecond {
		t.Errorf("Expected 300ms delete delay for Samsung family, got %v", delay)
	}
}

func TestLoadProfilesFromYAML(t *testing.T) {
	g, _ := newTestGovernor()

	path := filepath.Join(t.TempDir(), "device_profiles.yaml")
	doc := `profiles:
  - name: fitbit
    keywords: ["fitbit", "versa"]
    mode: stable
    delete_delay: 1.5s
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write profiles file: %v", err)
	}

	if err := g.LoadProfiles(path); err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}

	g.EnableFast()
	g.OptimizeFor("Fitbit Versa 4")
	if g.Mode() != ModeStable {
		t.Error("Custom profile must apply its mode")
	}
}

func TestLoadProfilesMissingFileKeepsDefaults(t *testing.T) {
	g, _ := newTestGovernor()
	if err := g.LoadProfiles(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("Missing profiles file must not be an error: %v", err)
	}
	g.OptimizeFor("Xiaomi Redmi Note")
	if g.Mode() != ModeStable {
		t.Error("Default profiles must remain in effect")
	}
}
