package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"notecal/internal/config"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a one-shot scan of the vault and print the results",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	configureLogging(cfg)

	ctx := context.Background()
	pipeline, _, db, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	stats, err := pipeline.IndexAll(ctx)
	fmt.Printf("scanned %d files, indexed %d entries, %d errors\n",
		stats.FilesScanned, stats.EntriesIndexed, stats.Errors)
	return err
}
