package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

var listWindowsCmd = &cobra.Command{
	Use:   "list-windows",
	Short: "List capturable windows with their device category",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Enumeration needs no OCR provider; skip full engine assembly.
		windows, err := window.NewRegistry().List()
		if err != nil {
			return err
		}
		if len(windows) == 0 {
			fmt.Println("No capturable windows found.")
			return nil
		}

		for _, w := range windows {
			line := w.Title
			if w.Category != window.CategoryUnknown {
				line += fmt.Sprintf("  [%s]", w.Category)
			}
			if w.HasBounds {
				line += fmt.Sprintf("  %dx%d at %d,%d", w.Bounds.Width, w.Bounds.Height, w.Bounds.Left, w.Bounds.Top)
			} else {
				line += "  (no reported bounds)"
			}
			fmt.Println(line)
		}
		fmt.Printf("\n%d windows\n", len(windows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listWindowsCmd)
}
