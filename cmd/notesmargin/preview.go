package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/notesmargin/internal/pdf"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.pdf>",
	Short: "Render the composed pages and check that the notes areas are blank",
	Long: `preview composes the given PDF, renders each page with MuPDF and saves the
content and notes regions as PNG images. Pages whose notes area is not blank
are reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		input := args[0]

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}

		dpi := cfg.Preview.DPI
		if cmd.Flags().Changed("dpi") {
			dpi, _ = cmd.Flags().GetFloat64("dpi")
		}
		if dpi <= 0 {
			return fmt.Errorf("dpi must be positive")
		}

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			dir = filepath.Join(cfg.OutputDir, base+"_preview")
		}

		previewer := pdf.NewPreviewer(pdf.FitzRenderer{}, pdf.NewWriter(cfg.ShouldValidate(), log), dpi, log)
		previews, err := previewer.Preview(cmd.Context(), input, dir)
		if err != nil {
			return err
		}

		if keep, _ := cmd.Flags().GetBool("keep-composed"); !keep {
			if err := pdf.RemoveComposed(input, dir); err != nil {
				log.Warn("Failed to remove composed PDF: %v", err)
			}
		}

		out := cmd.OutOrStdout()
		inked := 0
		for _, p := range previews {
			status := "blank"
			if !p.NotesAreaEmpty() {
				status = "NOT BLANK"
				inked++
			}
			fmt.Fprintf(out, "Page %d: %s -> %s, notes %s, hash %s\n",
				p.Number, p.Original, p.Composed, status, p.Hash)
		}
		fmt.Fprintf(out, "Images saved to: %s\n", dir)

		if inked > 0 {
			return fmt.Errorf("%d page(s) have content in the notes area", inked)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().Float64("dpi", 0, "render resolution (overrides config)")
	previewCmd.Flags().String("dir", "", "directory for preview images (default <output-dir>/<name>_preview)")
	previewCmd.Flags().Bool("keep-composed", false, "keep the composed PDF next to the images")

	rootCmd.AddCommand(previewCmd)
}
