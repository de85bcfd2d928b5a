//go:build !windows
// +build !windows

package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// LocalEngine recognizes text with an on-host tesseract installation,
// keeping capture usable when the remote service is unreachable or no
// credentials are configured.
type LocalEngine struct {
	language string
}

// NewLocalEngine creates a tesseract-backed recognizer.
func NewLocalEngine(language string) (*LocalEngine, error) {
	if language == "" {
		language = "eng"
	}
	// Probe once so a missing tesseract install surfaces at startup rather
	// than on the first capture cycle.
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	return &LocalEngine{language: language}, nil
}

// Recognize runs tesseract over the image bytes.
func (e *LocalEngine) Recognize(ctx context.Context, imageBytes []byte) (*Result, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("no image data to recognize")
	}

	tmp, err := os.CreateTemp("", "grace-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(imageBytes); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmp.Close()

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(e.language); err != nil {
		return nil, err
	}
	if err := client.SetImage(tmp.Name()); err != nil {
		return nil, err
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("local OCR failed: %w", err)
	}

	raw, _ := json.Marshal(map[string]string{"engine": "tesseract", "text": text})
	return &Result{Text: text, Raw: raw}, nil
}
