package export

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// JSONSink writes one document per capture containing the timestamp, window
// title, reconstructed text and the full OCR response.
type JSONSink struct {
	dir string
}

// NewJSONSink creates a sink writing documents under dir.
func NewJSONSink(dir string) *JSONSink {
	return &JSONSink{dir: dir}
}

type jsonDocument struct {
	Timestamp   string          `json:"timestamp"`
	WindowTitle string          `json:"window_title"`
	RawText     string          `json:"raw_text"`
	OCRResponse json.RawMessage `json:"ocr_response,omitempty"`
}

// Write persists the record and returns the document path.
func (s *JSONSink) Write(r Record) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create JSON directory: %w", err)
	}

	doc := jsonDocument{
		Timestamp:   r.Timestamp.Format("2006-01-02 15:04:05"),
		WindowTitle: r.WindowTitle,
		RawText:     r.Text,
		OCRResponse: r.Raw,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	// The timestamp alone is only second-granular; the random suffix plus an
	// existence check keeps same-second captures from overwriting each other.
	stamp := r.Timestamp.Format("20060102_150405")
	var path string
	for {
		path = filepath.Join(s.dir, fmt.Sprintf("capture_%s_%04d.json", stamp, 1000+rand.Intn(9000)))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON document: %w", err)
	}
	return path, nil
}
