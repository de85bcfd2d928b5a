// Package gui is the Fyne front-end: pick a window, capture it manually or
// on a schedule, and watch the extracted text come in.
package gui

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	engine "github.com/anas-gulzar-dev/grace-capture/internal/app"
	"github.com/anas-gulzar-dev/grace-capture/internal/export"
	"github.com/anas-gulzar-dev/grace-capture/internal/logger"
	"github.com/anas-gulzar-dev/grace-capture/internal/scheduler"
	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// Controller manages the GUI state and the capture engine
type Controller struct {
	engine *engine.App
	app    fyne.App
	window fyne.Window

	// Enumerated windows, index-aligned with the selector options
	windows   []window.Handle
	windowsMu sync.RWMutex

	// Widgets
	selector      *widget.Select
	intervalEntry *widget.Entry
	autoButton    *widget.Button
	statusLabel   *widget.Label
	resultText    *widget.Entry
}

// NewController creates a new GUI controller
func NewController(eng *engine.App, app fyne.App, win fyne.Window) *Controller {
	c := &Controller{
		engine: eng,
		app:    app,
		window: win,
	}
	c.engine.Scheduler.OnCycle = c.onCycle
	return c
}

// BuildUI constructs the main layout
func (c *Controller) BuildUI() fyne.CanvasObject {
	c.selector = widget.NewSelect(nil, nil)
	c.selector.PlaceHolder = "Select a window..."

	refreshButton := widget.NewButton("Refresh", c.refreshWindows)
	captureButton := widget.NewButton("Capture", func() { c.captureOnce(false) })
	backgroundButton := widget.NewButton("Background Capture", func() { c.captureOnce(true) })

	c.intervalEntry = widget.NewEntry()
	c.intervalEntry.SetText("30")
	c.autoButton = widget.NewButton("Start Auto-Capture", c.toggleAuto)

	c.statusLabel = widget.NewLabel("Ready")
	c.resultText = widget.NewMultiLineEntry()
	c.resultText.Wrapping = fyne.TextWrapWord

	controls := container.NewVBox(
		widget.NewLabelWithStyle("Target Window", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, refreshButton, c.selector),
		container.NewHBox(captureButton, backgroundButton),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Auto-Capture", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Interval (s)"), c.autoButton, c.intervalEntry),
		widget.NewSeparator(),
		c.statusLabel,
	)

	c.refreshWindows()

	return container.NewBorder(
		controls,     // Top
		nil,          // Bottom
		nil,          // Left
		nil,          // Right
		c.resultText, // Center
	)
}

// Shutdown stops auto-capture and releases the engine
func (c *Controller) Shutdown() {
	c.engine.Close()
}

func (c *Controller) refreshWindows() {
	windows, err := c.engine.Windows()
	if err != nil {
		dialog.ShowError(err, c.window)
		return
	}

	options := make([]string, 0, len(windows))
	for _, w := range windows {
		label := w.Title
		if w.Category != window.CategoryUnknown {
			label = fmt.Sprintf("%s [%s]", w.Title, w.Category)
		}
		options = append(options, label)
	}

	c.windowsMu.Lock()
	c.windows = windows
	c.windowsMu.Unlock()

	c.selector.Options = options
	c.selector.Refresh()
	c.setStatus(fmt.Sprintf("Found %d windows", len(windows)))
}

// selected returns the handle for the current selector choice
func (c *Controller) selected() (window.Handle, bool) {
	c.windowsMu.RLock()
	defer c.windowsMu.RUnlock()
	idx := c.selector.SelectedIndex()
	if idx < 0 || idx >= len(c.windows) {
		return window.Handle{}, false
	}
	return c.windows[idx], true
}

func (c *Controller) captureOnce(background bool) {
	h, ok := c.selected()
	if !ok {
		dialog.ShowError(fmt.Errorf("no window selected"), c.window)
		return
	}

	c.setStatus(fmt.Sprintf("Capturing %q...", h.Title))

	// Capture and OCR block; keep the UI thread free.
	go func() {
		var record export.Record
		var err error
		if background {
			record, err = c.engine.CaptureBackground(context.Background(), h)
		} else {
			record, err = c.engine.CaptureNow(context.Background(), h)
		}

		fyne.Do(func() {
			if err != nil {
				logger.Error("Manual capture failed: %v", err)
				c.setStatus("Capture failed")
				dialog.ShowError(err, c.window)
				return
			}
			c.showRecord(record)
			c.setStatus(fmt.Sprintf("Captured via %s", record.Strategy))
		})
	}()
}

func (c *Controller) toggleAuto() {
	if c.engine.Scheduler.State() == scheduler.StateRunning {
		go func() {
			c.engine.StopAuto()
			fyne.Do(func() {
				c.autoButton.SetText("Start Auto-Capture")
				c.setStatus("Auto-capture stopped")
			})
		}()
		return
	}

	h, ok := c.selected()
	if !ok {
		dialog.ShowError(fmt.Errorf("no window selected"), c.window)
		return
	}

	seconds, err := strconv.Atoi(c.intervalEntry.Text)
	if err != nil || seconds < 1 {
		dialog.ShowError(fmt.Errorf("interval must be a whole number of seconds, at least 1"), c.window)
		return
	}

	if err := c.engine.StartAuto(h, time.Duration(seconds)*time.Second, 0); err != nil {
		dialog.ShowError(err, c.window)
		return
	}
	c.autoButton.SetText("Stop Auto-Capture")
	c.setStatus(fmt.Sprintf("Auto-capturing %q every %ds", h.Title, seconds))
}

// onCycle runs on the scheduler goroutine; hop to the UI thread.
func (c *Controller) onCycle(cycle int, record export.Record, err error) {
	fyne.Do(func() {
		if err != nil {
			c.setStatus(fmt.Sprintf("Cycle %d failed: %v", cycle, err))
			return
		}
		c.showRecord(record)
		c.setStatus(fmt.Sprintf("Cycle %d: captured via %s", cycle, record.Strategy))
	})
}

func (c *Controller) showRecord(record export.Record) {
	text := record.Text
	if text == "" {
		text = "(no text detected)"
	}
	c.resultText.SetText(fmt.Sprintf("[%s] %s\n\n%s",
		record.Timestamp.Format("15:04:05"), record.WindowTitle, text))
}

func (c *Controller) setStatus(msg string) {
	c.statusLabel.SetText(msg)
}
