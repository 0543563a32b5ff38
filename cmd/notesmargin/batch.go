package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/notesmargin/internal/scanner"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every Word document under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		dir := args[0]

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}

		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("document directory does not exist: %s", dir)
		}

		processor, err := newProcessor(cfg, log)
		if err != nil {
			return fmt.Errorf("error initializing processor: %w", err)
		}
		defer processor.Cleanup()

		log.Info("Scanning directory: %s", dir)
		report, err := scanner.New(processor, log).ScanDirectory(cmd.Context(), dir)
		if report != nil {
			report.Finish()
			report.Print(log)
		}
		if err != nil {
			return err
		}

		if report.HasFailures() {
			return fmt.Errorf("%d of %d documents failed", report.Failed, report.Failed+report.Processed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
