package ocr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const regionsBody = `{
	"language": "en",
	"regions": [
		{"lines": [
			{"words": [{"text": "Heart"}, {"text": "Rate"}]},
			{"words": [{"text": "72"}, {"text": "bpm"}]}
		]},
		{"lines": [
			{"words": [{"text": "Steps"}, {"text": "10432"}]}
		]}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", "en", true)
}

func TestRecognizeReconstructsText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			t.Error("Missing subscription key header")
		}
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("Expected language=en, got %q", got)
		}
		if got := r.URL.Query().Get("detectOrientation"); got != "true" {
			t.Errorf("Expected detectOrientation=true, got %q", got)
		}
		w.Write([]byte(regionsBody))
	})

	result, err := client.Recognize(context.Background(), []byte("fake-png"))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	want := "Heart Rate\n72 bpm\nSteps 10432"
	if result.Text != want {
		t.Errorf("Expected %q, got %q", want, result.Text)
	}
	if len(result.Raw) == 0 {
		t.Error("Raw response must be preserved for the JSON sink")
	}
}

func TestRecognizeNon200CarriesStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"401","message":"Access denied"}}`))
	})

	_, err := client.Recognize(context.Background(), []byte("fake-png"))
	if err == nil {
		t.Fatal("Expected error for 401 response")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", statusErr.StatusCode)
	}
}

func TestRecognizeRejectsEmptyImage(t *testing.T) {
	client := NewClient("http://unused", "key", "en", false)
	if _, err := client.Recognize(context.Background(), nil); err == nil {
		t.Error("Expected error for empty image bytes")
	}
}

func TestExtractTextFallbackScan(t *testing.T) {
	body := []byte(`{"analyzeResult": {"pages": [{"lines": [{"content": "fallback text"}]}]}}`)
	text, err := ExtractText(body)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "fallback text" {
		t.Errorf("Expected fallback scan to find text, got %q", text)
	}
}

func TestExtractTextMalformedBody(t *testing.T) {
	if _, err := ExtractText([]byte("not json")); err == nil {
		t.Error("Expected error for malformed body")
	}
}

func TestExtractTextSkipsEmptyLines(t *testing.T) {
	body := []byte(`{"regions": [{"lines": [{"words": [{"text": ""}]}, {"words": [{"text": "ok"}]}]}]}`)
	text, err := ExtractText(body)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "ok" {
		t.Errorf("Expected empty lines to be dropped, got %q", text)
	}
}

func TestUnconfiguredRecognizerReportsReason(t *testing.T) {
	u := &Unconfigured{Reason: "remote credentials missing"}
	_, err := u.Recognize(context.Background(), []byte("frame"))
	if err == nil {
		t.Fatal("Expected error from unconfigured recognizer")
	}
	if !strings.Contains(err.Error(), "remote credentials missing") {
		t.Errorf("Error must carry the reason, got %v", err)
	}
}
