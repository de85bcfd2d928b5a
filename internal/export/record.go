// Package export persists OCR capture results: a row-oriented CSV table,
// one JSON document per capture, and a SQLite history store.
package export

import (
	"encoding/json"
	"time"
)

// Record is one capture's persisted data.
type Record struct {
	Timestamp   time.Time
	WindowTitle string
	Text        string
	Strategy    string
	ImagePath   string
	Raw         json.RawMessage
}
