package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anas-gulzar-dev/grace-capture/internal/export"
)

var captureCmd = &cobra.Command{
	Use:   "capture <window-title>",
	Short: "Capture a window once (activates it) and extract text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCapture(args[0], false)
	},
}

var backgroundCaptureCmd = &cobra.Command{
	Use:   "background-capture <window-title>",
	Short: "Capture a window once without bringing it to the foreground",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCapture(args[0], true)
	},
}

func runCapture(title string, background bool) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	h, err := eng.FindWindow(title)
	if err != nil {
		return err
	}
	fmt.Printf("Capturing %q...\n", h.Title)

	var record export.Record
	if background {
		record, err = eng.CaptureBackground(context.Background(), h)
	} else {
		record, err = eng.CaptureNow(context.Background(), h)
	}
	if err != nil {
		return err
	}

	printRecord(record)
	return nil
}

func printRecord(record export.Record) {
	fmt.Printf("strategy: %s\n", record.Strategy)
	if record.ImagePath != "" {
		fmt.Printf("image:    %s\n", record.ImagePath)
	}
	fmt.Println("---")
	if record.Text == "" {
		fmt.Println("(no text detected)")
		return
	}
	fmt.Println(record.Text)
}

func init() {
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(backgroundCaptureCmd)
}
