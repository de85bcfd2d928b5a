//go:build windows
// +build windows

package ocr

import (
	"context"
	"errors"
)

// LocalEngine is unavailable on Windows; use the remote service there.
type LocalEngine struct{}

// NewLocalEngine reports local OCR as unsupported on Windows.
func NewLocalEngine(language string) (*LocalEngine, error) {
	return nil, errors.New("local OCR engine is not available on Windows")
}

// Recognize always fails on Windows.
func (e *LocalEngine) Recognize(ctx context.Context, imageBytes []byte) (*Result, error) {
	return nil, errors.New("local OCR engine is not available on Windows")
}
