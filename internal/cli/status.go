package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recentLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show engine capabilities and governor state",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		fmt.Println(eng.Status())
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent captures from the history store",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		records, err := eng.Recent(recentLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No captures recorded yet.")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  %-30s  %s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.WindowTitle, firstLine(r.Text))
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", 10, "maximum records to show")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(recentCmd)
}
