// Package cli defines the portionsd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frp/ssnt-nutrition/internal/api"
)

var rootCmd = &cobra.Command{
	Use:   "portionsd",
	Short: "Event-sourced nutrition tracker",
	Long: `portionsd tracks daily portions of protein, carbs, vegetables and fats,
plus per-nutrient goals, over a small HTTP API.

State is never updated in place: every change is an appended event, and
current counts are derived by aggregating the event log on read.`,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the portionsd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "portionsd %s\n", api.Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
