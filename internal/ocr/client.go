// Package ocr submits captured frames to a text-recognition service and
// reconstructs plain text from the structured response.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Result is a recognition outcome: reconstructed text plus the raw service
// response for the JSON export sink.
type Result struct {
	Text string
	Raw  json.RawMessage
}

// Recognizer turns image bytes into text. Implemented by the Azure client
// and the optional local engine.
type Recognizer interface {
	Recognize(ctx context.Context, imageBytes []byte) (*Result, error)
}

// StatusError is returned for any non-200 response, carrying enough detail
// to act on.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("OCR API error: %d - %s", e.StatusCode, e.Body)
}

// Client calls the Azure Computer Vision OCR v3.2 endpoint.
type Client struct {
	endpoint          string
	apiKey            string
	language          string
	detectOrientation bool
	httpClient        *http.Client
}

// NewClient creates a client for the given endpoint and subscription key.
func NewClient(endpoint, apiKey, language string, detectOrientation bool) *Client {
	if language == "" {
		language = "en"
	}
	return &Client{
		endpoint:          endpoint,
		apiKey:            apiKey,
		language:          language,
		detectOrientation: detectOrientation,
		httpClient:        &http.Client{Timeout: 30 * time.Second},
	}
}

// Recognize POSTs the raw image bytes and reconstructs text from the
// region -> line -> word hierarchy of the response.
func (c *Client) Recognize(ctx context.Context, imageBytes []byte) (*Result, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("no image data to recognize")
	}

	u := fmt.Sprintf("%s/vision/v3.2/ocr?%s", c.endpoint, url.Values{
		"language":          {c.language},
		"detectOrientation": {strconv.FormatBool(c.detectOrientation)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(imageBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OCR response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	text, err := ExtractText(body)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text, Raw: json.RawMessage(body)}, nil
}
