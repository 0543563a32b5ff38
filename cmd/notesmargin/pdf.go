package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/notesmargin/pkg/models"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf <input.pdf>",
	Short: "Add notes areas to an existing PDF",
	Long: `pdf skips the Word conversion step and applies the same page layout to a
PDF that already exists.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			return err
		}
		if !strings.EqualFold(filepath.Ext(args[0]), ".pdf") {
			return fmt.Errorf("input must be a .pdf file: %s", args[0])
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}

		processor, err := newProcessor(cfg, log)
		if err != nil {
			return fmt.Errorf("error initializing processor: %w", err)
		}
		defer processor.Cleanup()

		stats, err := processor.ProcessPDF(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		report := models.NewProcessingReport()
		report.AddSuccess(stats)
		report.Finish()
		report.Print(log)

		fmt.Fprintln(cmd.OutOrStdout(), stats.OutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pdfCmd)
}
