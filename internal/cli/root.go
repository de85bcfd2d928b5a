// Package cli implements the grace-cli command set on top of the capture
// engine.
package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/anas-gulzar-dev/grace-capture/internal/app"
	"github.com/anas-gulzar-dev/grace-capture/internal/config"
)

var (
	appVersion = "dev"
	appCommit  = "none"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "grace-cli",
	Short: "Grace Capture - screen capture and OCR for mirrored devices",
	Long: `Grace Capture extracts readable text from a mirrored device's on-screen
window: it enumerates windows, captures pixels through a strategy cascade,
submits frames to an OCR service and records the results, on demand or on a
schedule.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("grace-cli %s\ncommit: %s\n", appVersion, appCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "Settings.ini", "path to the settings file")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newEngine assembles the capture engine from the configured settings file.
func newEngine() (*app.App, error) {
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config: %v", err)
		settings = config.NewDefaultSettings()
	}
	return app.New(settings, config.LoadCredentials())
}
