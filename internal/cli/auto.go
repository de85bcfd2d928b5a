package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/anas-gulzar-dev/grace-capture/internal/export"
	"github.com/anas-gulzar-dev/grace-capture/internal/scheduler"
)

var (
	autoInterval int
	autoDuration int
)

var autoCaptureCmd = &cobra.Command{
	Use:   "auto-capture <window-title>",
	Short: "Capture a window on a schedule until interrupted",
	Long: `Capture the window every --interval seconds, extracting and recording
text each cycle. Runs until Ctrl-C, or for --duration seconds when given.
A duration of 12s at a 5s interval performs exactly two captures: each cycle
waits the full interval before capturing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		h, err := eng.FindWindow(args[0])
		if err != nil {
			return err
		}

		eng.Scheduler.OnCycle = func(cycle int, record export.Record, err error) {
			if err != nil {
				fmt.Printf("[cycle %d] failed: %v\n", cycle, err)
				return
			}
			fmt.Printf("[cycle %d] %s: %q\n", cycle, record.Strategy, firstLine(record.Text))
		}

		interval := time.Duration(autoInterval) * time.Second
		duration := time.Duration(autoDuration) * time.Second
		if err := eng.StartAuto(h, interval, duration); err != nil {
			return err
		}
		fmt.Printf("Auto-capturing %q every %v. Ctrl-C to stop.\n", h.Title, interval)

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		defer signal.Stop(interrupt)

		for eng.Scheduler.State() == scheduler.StateRunning {
			select {
			case <-interrupt:
				fmt.Println("\nStopping...")
				eng.StopAuto()
			case <-time.After(200 * time.Millisecond):
			}
		}
		fmt.Printf("Done after %d cycles.\n", eng.Scheduler.Cycles())
		return nil
	},
}

func firstLine(text string) string {
	for i, r := range text {
		if r == '\n' {
			return text[:i] + "..."
		}
	}
	return text
}

func init() {
	autoCaptureCmd.Flags().IntVar(&autoInterval, "interval", 30, "seconds between captures (minimum 1)")
	autoCaptureCmd.Flags().IntVar(&autoDuration, "duration", 0, "total seconds to run, 0 means until interrupted")
	rootCmd.AddCommand(autoCaptureCmd)
}
