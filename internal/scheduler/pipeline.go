// Package scheduler runs the automatic capture loop: a pipeline turning one
// window capture into persisted OCR text, and a ticker driving it at a fixed
// interval with bounded stop latency.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/anas-gulzar-dev/grace-capture/internal/capture"
	"github.com/anas-gulzar-dev/grace-capture/internal/export"
	"github.com/anas-gulzar-dev/grace-capture/internal/logger"
	"github.com/anas-gulzar-dev/grace-capture/internal/ocr"
	"github.com/anas-gulzar-dev/grace-capture/internal/stability"
	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// Capturer runs the strategy cascade for one window.
type Capturer interface {
	Run(h window.Handle, mode capture.Mode, padding int, prefix string) capture.Result
}

// RowSink appends one flattened row per capture.
type RowSink interface {
	Append(export.Record) error
}

// DocumentSink writes one full document per capture.
type DocumentSink interface {
	Write(export.Record) (string, error)
}

// HistorySink records captures for later querying.
type HistorySink interface {
	Insert(export.Record) error
}

// Pipeline turns a single capture request into persisted text: capture,
// recognize, export, then optionally delete the screenshot. All file-system
// steps run under the stability governor. Manual and automatic captures share
// one pipeline, so they never overlap on the same window.
type Pipeline struct {
	mu sync.Mutex

	Capturer   Capturer
	Recognizer ocr.Recognizer
	Governor   *stability.Governor

	CSV     RowSink
	JSON    DocumentSink
	History HistorySink

	Padding        int
	DeleteAfterOCR bool
}

// Process captures the window once and persists the recognized text. The
// returned record is valid only when err is nil. A recognition failure (for
// example an expired API key) skips persistence for this capture; it is the
// caller's loop, not this method, that decides whether to keep going.
func (p *Pipeline) Process(ctx context.Context, h window.Handle, mode capture.Mode, prefix string) (export.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := p.Capturer.Run(h, mode, p.Padding, prefix)
	if !result.Success {
		return export.Record{}, fmt.Errorf("all capture strategies failed for %q: %v", h.Title, result.Errors())
	}

	imageBytes, err := os.ReadFile(result.ImagePath)
	if err != nil {
		return export.Record{}, fmt.Errorf("failed to read captured frame: %w", err)
	}

	var recognized *ocr.Result
	err = p.Governor.Guard(stability.OpOCRProcess, func() error {
		var rerr error
		recognized, rerr = p.Recognizer.Recognize(ctx, imageBytes)
		return rerr
	})
	if err != nil {
		return export.Record{}, fmt.Errorf("recognition failed: %w", err)
	}

	record := export.Record{
		Timestamp:   result.Timestamp,
		WindowTitle: h.Title,
		Text:        recognized.Text,
		Strategy:    result.StrategyUsed,
		ImagePath:   result.ImagePath,
		Raw:         recognized.Raw,
	}

	if err := p.persist(record); err != nil {
		return export.Record{}, err
	}

	if p.DeleteAfterOCR && !p.Governor.ShouldSkip(stability.OpFileDelete) {
		if err := p.Governor.Guard(stability.OpFileDelete, func() error {
			return os.Remove(result.ImagePath)
		}); err != nil {
			// The text is already saved; a stuck screenshot is cleanup's job.
			logger.Warn("Failed to delete %s: %v", result.ImagePath, err)
		}
	}

	return record, nil
}

func (p *Pipeline) persist(record export.Record) error {
	return p.Governor.Guard(stability.OpFileWrite, func() error {
		if p.CSV != nil {
			if err := p.CSV.Append(record); err != nil {
				return fmt.Errorf("CSV export failed: %w", err)
			}
		}
		if p.JSON != nil {
			if _, err := p.JSON.Write(record); err != nil {
				return fmt.Errorf("JSON export failed: %w", err)
			}
		}
		if p.History != nil {
			if err := p.History.Insert(record); err != nil {
				return fmt.Errorf("history insert failed: %w", err)
			}
		}
		return nil
	})
}
