package ocr

import (
	"context"
	"fmt"
)

// Unconfigured stands in when neither the remote service nor the local
// engine is available. Window listing and capture stay usable; every
// recognition attempt reports the missing provider so the condition shows up
// in each cycle's status instead of killing the process at startup.
type Unconfigured struct {
	Reason string
}

// Recognize always fails with the reason no provider is available.
func (u *Unconfigured) Recognize(ctx context.Context, imageBytes []byte) (*Result, error) {
	return nil, fmt.Errorf("OCR not configured: %s", u.Reason)
}
