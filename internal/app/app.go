// Package app wires the capture engine together: window registry, strategy
// cascade, stability governor, recognizer, export sinks and scheduler. Both
// front-ends (CLI and GUI) build on this layer.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/anas-gulzar-dev/grace-capture/internal/capture"
	"github.com/anas-gulzar-dev/grace-capture/internal/config"
	"github.com/anas-gulzar-dev/grace-capture/internal/export"
	"github.com/anas-gulzar-dev/grace-capture/internal/logger"
	"github.com/anas-gulzar-dev/grace-capture/internal/ocr"
	"github.com/anas-gulzar-dev/grace-capture/internal/scheduler"
	"github.com/anas-gulzar-dev/grace-capture/internal/stability"
	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// App holds the assembled capture engine.
type App struct {
	Settings    *config.Settings
	Credentials *config.Credentials

	Registry  *window.Registry
	Governor  *stability.Governor
	Pipeline  *scheduler.Pipeline
	Scheduler *scheduler.Scheduler

	strategies []capture.Strategy
	store      *export.Store
	provider   string
}

// New assembles the engine from settings. Missing OCR credentials degrade to
// the local engine when available, and to a placeholder recognizer when not:
// startup warns once and each capture cycle reports the missing provider,
// but window listing and capture keep working.
func New(settings *config.Settings, creds *config.Credentials) (*App, error) {
	a := &App{
		Settings:    settings,
		Credentials: creds,
		Registry:    window.NewRegistry(),
		Governor:    stability.NewGovernor(),
	}

	if !settings.StableMode {
		a.Governor.EnableFast()
	}
	if err := a.Governor.LoadProfiles(settings.ProfilesPath); err != nil {
		logger.Warn("Failed to load device profiles: %v", err)
	}

	a.strategies = capture.DefaultStrategies()
	logger.Info("Capture strategies available: %s", strings.Join(capture.StrategyIDs(a.strategies), ", "))

	recognizer, provider := a.buildRecognizer()
	a.provider = provider

	store, err := export.OpenStore(settings.DatabasePath)
	if err != nil {
		return nil, err
	}
	a.store = store

	cascade := capture.NewCascade(settings.ScreenshotsDir, a.strategies, window.NewActivator(), a.Registry)

	a.Pipeline = &scheduler.Pipeline{
		Capturer:       cascade,
		Recognizer:     recognizer,
		Governor:       a.Governor,
		CSV:            export.NewCSVSink(filepath.Join(settings.CSVDir, "auto_data.csv")),
		JSON:           export.NewJSONSink(settings.JSONDir),
		History:        store,
		Padding:        settings.CropPadding,
		DeleteAfterOCR: settings.DeleteAfterOCR,
	}
	a.Scheduler = scheduler.New(a.Pipeline, a.cleanupPass)

	return a, nil
}

func (a *App) buildRecognizer() (ocr.Recognizer, string) {
	if a.Settings.OCRProvider == "local" {
		engine, err := ocr.NewLocalEngine(a.Credentials.Language)
		if err != nil {
			logger.Warn("Local OCR engine unavailable: %v", err)
			return &ocr.Unconfigured{Reason: err.Error()}, "none"
		}
		return engine, "local"
	}

	if a.Credentials.Configured() {
		client := ocr.NewClient(
			a.Credentials.AzureEndpoint,
			a.Credentials.AzureKey,
			a.Credentials.Language,
			a.Credentials.DetectOrientation,
		)
		return client, "azure"
	}

	// No credentials: degraded startup, not a crash.
	logger.Warn("AZURE_VISION_KEY/AZURE_VISION_ENDPOINT not set, trying local OCR")
	engine, err := ocr.NewLocalEngine("")
	if err != nil {
		logger.Warn("No OCR provider available, captures will be saved without text: %v", err)
		return &ocr.Unconfigured{Reason: "remote credentials missing and " + err.Error()}, "none"
	}
	return engine, "local"
}

// Windows lists capturable windows.
func (a *App) Windows() ([]window.Handle, error) {
	return a.Registry.List()
}

// FindWindow returns the first window whose title contains substr.
func (a *App) FindWindow(substr string) (window.Handle, error) {
	return a.Registry.FindByTitle(substr)
}

// CaptureNow performs one foreground capture of the window. Safe to call
// while auto-capture is running: the pipeline serializes captures so the
// scheduler's next cycle waits for this one.
func (a *App) CaptureNow(ctx context.Context, h window.Handle) (export.Record, error) {
	a.Governor.OptimizeFor(h.Title)
	return a.Pipeline.Process(ctx, h, capture.ModeForeground, capture.PrefixManual)
}

// CaptureBackground performs one capture without activating the window.
func (a *App) CaptureBackground(ctx context.Context, h window.Handle) (export.Record, error) {
	a.Governor.OptimizeFor(h.Title)
	return a.Pipeline.Process(ctx, h, capture.ModeBackground, capture.PrefixBackground)
}

// StartAuto begins scheduled background capture of the window.
func (a *App) StartAuto(h window.Handle, interval, duration time.Duration) error {
	a.Governor.OptimizeFor(h.Title)
	return a.Scheduler.Start(h, capture.ModeBackground, interval, duration)
}

// StopAuto stops scheduled capture, blocking until the loop has exited.
func (a *App) StopAuto() {
	a.Scheduler.Stop()
}

// Status returns a short multi-line status report.
func (a *App) Status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scheduler: %s", a.Scheduler.State())
	if a.Scheduler.State() == scheduler.StateRunning {
		fmt.Fprintf(&b, " (%d cycles)", a.Scheduler.Cycles())
	}
	fmt.Fprintf(&b, "\nocr provider: %s", a.provider)
	fmt.Fprintf(&b, "\n%s", a.Governor.StatusMessage())
	fmt.Fprintf(&b, "\nstrategies: %s", strings.Join(capture.StrategyIDs(a.strategies), ", "))
	fmt.Fprintf(&b, "\nbackground-capable: %d", capture.BackgroundCapable(a.strategies))
	return b.String()
}

// Recent returns the most recent capture records from the history store.
func (a *App) Recent(limit int) ([]export.Record, error) {
	return a.store.Recent(limit)
}

// cleanupPass applies the retention policy to the screenshots directory.
func (a *App) cleanupPass() (int, error) {
	deleted, err := export.CleanupByCount(a.Settings.ScreenshotsDir, a.Settings.RetentionCount)
	if err != nil {
		return deleted, err
	}
	if a.Settings.RetentionAge > 0 {
		aged, aerr := export.CleanupByAge(a.Settings.ScreenshotsDir, a.Settings.RetentionAge, time.Now())
		deleted += aged
		if aerr != nil {
			return deleted, aerr
		}
	}
	return deleted, nil
}

// Close stops the scheduler and releases the history store.
func (a *App) Close() {
	a.Scheduler.Stop()
	if a.store != nil {
		a.store.Close()
	}
}
