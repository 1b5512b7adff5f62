package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notecal",
	Short: "Calendar index for a markdown note vault",
	Long: "Notecal scans an Obsidian-style vault for dated notes, indexes them by day,\n" +
		"and serves month views and date lookups over a small HTTP API.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
