package app

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/anas-gulzar-dev/grace-capture/internal/config"
)

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	dir := t.TempDir()
	s := config.NewDefaultSettings()
	s.ScreenshotsDir = filepath.Join(dir, "screenshots")
	s.CSVDir = filepath.Join(dir, "csv")
	s.JSONDir = filepath.Join(dir, "json")
	s.DatabasePath = filepath.Join(dir, "captures.db")
	s.ProfilesPath = filepath.Join(dir, "device_profiles.yaml")
	return s
}

func TestNewWithoutCredentialsStartsDegraded(t *testing.T) {
	// No .env, no environment: startup must warn and degrade, never fail.
	a, err := New(testSettings(t), &config.Credentials{})
	if err != nil {
		t.Fatalf("Engine must start without OCR credentials, got: %v", err)
	}
	defer a.Close()

	if a.Pipeline.Recognizer == nil {
		t.Fatal("A recognizer must always be wired, even a degraded one")
	}
	if !strings.Contains(a.Status(), "ocr provider") {
		t.Errorf("Status must report the provider, got %q", a.Status())
	}
}

func TestNewWithCredentialsUsesAzure(t *testing.T) {
	creds := &config.Credentials{
		AzureKey:      "test-key",
		AzureEndpoint: "https://example.cognitiveservices.azure.com",
		Language:      "en",
	}

	a, err := New(testSettings(t), creds)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if !strings.Contains(a.Status(), "ocr provider: azure") {
		t.Errorf("Expected azure provider, got %q", a.Status())
	}
}
