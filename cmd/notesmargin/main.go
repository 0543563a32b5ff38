// Package main is the entry point for the notesmargin CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/notesmargin/internal/config"
	"github.com/kpauljoseph/notesmargin/internal/converter"
	"github.com/kpauljoseph/notesmargin/internal/pdf"
	"github.com/kpauljoseph/notesmargin/pkg/logger"
	"github.com/kpauljoseph/notesmargin/pkg/models"
	"github.com/kpauljoseph/notesmargin/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "notesmargin <input.docx>",
	Short: "Add a blank notes area beside every page of a Word document",
	Long: `notesmargin converts a Word document to PDF and pairs every page with a
blank area of the same size: to the right of portrait pages, below landscape
and square ones. The result is written as <prefix><name>.pdf.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			return err
		}
		if !converter.IsWordDocument(args[0]) {
			return fmt.Errorf("input must be a %s file: %s", converter.WordExtension, args[0])
		}
		return nil
	},
	RunE: runDocument,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultPath, "path to config file")
	flags.Bool("verbose", false, "enable verbose logging")
	flags.Bool("debug", false, "enable debug mode with trace logging")
	flags.String("output-dir", "", "directory to write transformed PDFs (overrides config)")
	flags.String("prefix", "", "output file name prefix (overrides config)")
	flags.String("backend", "", "conversion backend: libreoffice or gotenberg (overrides config)")
	flags.Bool("keep-pdf", false, "keep the intermediate PDF next to the output")
}

// setup loads the configuration, applies flag overrides and builds the
// logger every command shares.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	flags := cmd.Flags()

	log := logger.New(logger.WithPrefix("[notesmargin] "))
	if verbose, _ := flags.GetBool("verbose"); verbose {
		log.SetVerbose(true)
		log.Debug("Verbose logging enabled")
	}
	if debug, _ := flags.GetBool("debug"); debug {
		log.SetVerbose(true)
		log.SetLevel(logger.LevelTrace)
	}

	configPath, _ := flags.GetString("config")
	cfg, err := config.LoadOrDefault(configPath, !flags.Changed("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}

	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("prefix") {
		cfg.OutputPrefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("backend") {
		cfg.Converter.Backend, _ = flags.GetString("backend")
	}
	if keep, _ := flags.GetBool("keep-pdf"); keep {
		cfg.KeepIntermediate = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log.Trace("Config: %+v", *cfg)
	return cfg, log, nil
}

func newProcessor(cfg *config.Config, log *logger.Logger) (*pdf.Processor, error) {
	conv, err := converter.New(cfg.Converter, log)
	if err != nil {
		return nil, err
	}

	tempDir, err := utils.TempWorkDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return pdf.NewProcessor(
		tempDir,
		cfg.OutputDir,
		cfg.OutputPrefix,
		cfg.KeepIntermediate,
		conv,
		pdf.NewWriter(cfg.ShouldValidate(), log),
		log,
	)
}

func runDocument(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	processor, err := newProcessor(cfg, log)
	if err != nil {
		return fmt.Errorf("error initializing processor: %w", err)
	}
	defer func() {
		if err := processor.Cleanup(); err != nil {
			log.Warn("Error during cleanup: %v", err)
		}
	}()

	input, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	report := models.NewProcessingReport()
	stats, err := processor.ProcessDocument(cmd.Context(), input)
	if err != nil {
		return err
	}
	report.AddSuccess(stats)
	report.Finish()
	report.Print(log)

	fmt.Fprintln(cmd.OutOrStdout(), stats.OutputPath)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
