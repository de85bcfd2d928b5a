package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Settings holds user-tunable capture behavior loaded from Settings.ini.
type Settings struct {
	ScreenshotsDir  string
	CSVDir          string
	JSONDir         string
	DatabasePath    string
	CaptureInterval time.Duration
	CropPadding     int
	RetentionCount  int
	RetentionAge    time.Duration
	DeleteAfterOCR  bool
	StableMode      bool
	OCRProvider     string // "azure" or "local"
	ProfilesPath    string
}

// Credentials holds the remote OCR service configuration loaded from the
// environment (optionally seeded from a .env file).
type Credentials struct {
	AzureKey          string
	AzureEndpoint     string
	Language          string
	DetectOrientation bool
}

// NewDefaultSettings returns settings usable with no Settings.ini present.
func NewDefaultSettings() *Settings {
	return &Settings{
		ScreenshotsDir:  "screenshots",
		CSVDir:          "csv_exports",
		JSONDir:         "json_exports",
		DatabasePath:    "data/captures.db",
		CaptureInterval: 30 * time.Second,
		CropPadding:     0,
		RetentionCount:  5,
		RetentionAge:    0,
		DeleteAfterOCR:  true,
		StableMode:      true,
		OCRProvider:     "azure",
		ProfilesPath:    "device_profiles.yaml",
	}
}

// LoadSettings loads Settings.ini from path, falling back to defaults for
// any missing key.
func LoadSettings(path string) (*Settings, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	section := cfg.Section("UserSettings")
	s := NewDefaultSettings()

	s.ScreenshotsDir = section.Key("screenshotsDir").MustString(s.ScreenshotsDir)
	s.CSVDir = section.Key("csvDir").MustString(s.CSVDir)
	s.JSONDir = section.Key("jsonDir").MustString(s.JSONDir)
	s.DatabasePath = section.Key("databasePath").MustString(s.DatabasePath)
	s.CaptureInterval = time.Duration(section.Key("captureIntervalSeconds").MustInt(30)) * time.Second
	s.CropPadding = section.Key("cropPadding").MustInt(0)
	s.RetentionCount = section.Key("retentionCount").MustInt(5)
	s.RetentionAge = time.Duration(section.Key("retentionMinutes").MustInt(0)) * time.Minute
	s.DeleteAfterOCR = section.Key("deleteAfterOCR").MustBool(true)
	s.StableMode = section.Key("usbStabilityMode").MustBool(true)
	s.OCRProvider = strings.ToLower(section.Key("ocrProvider").MustString("azure"))
	s.ProfilesPath = section.Key("deviceProfiles").MustString(s.ProfilesPath)

	return s, nil
}

// LoadCredentials reads OCR credentials from the environment. A .env file in
// the working directory is loaded first when present; a missing file is not
// an error.
func LoadCredentials() *Credentials {
	godotenv.Load()

	c := &Credentials{
		AzureKey:          os.Getenv("AZURE_VISION_KEY"),
		AzureEndpoint:     strings.TrimRight(os.Getenv("AZURE_VISION_ENDPOINT"), "/"),
		Language:          os.Getenv("OCR_LANGUAGE"),
		DetectOrientation: true,
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if v := os.Getenv("DETECT_ORIENTATION"); v != "" {
		c.DetectOrientation = strings.EqualFold(v, "true") || v == "1"
	}
	return c
}

// Configured reports whether remote OCR can be used.
func (c *Credentials) Configured() bool {
	return c.AzureKey != "" && c.AzureEndpoint != ""
}
