package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/notesmargin/internal/layout"
	"github.com/kpauljoseph/notesmargin/internal/pdf"
)

var dimsCmd = &cobra.Command{
	Use:   "dims <file.pdf>",
	Short: "Print page dimensions and the placement each page would get",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		boxes, err := pdf.PageDims(args[0])
		if err != nil {
			return fmt.Errorf("error getting page dimensions: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Analyzing PDF: %s\n", args[0])
		for i, b := range boxes {
			fmt.Fprintf(out, "\nPage %d:\n", i+1)
			fmt.Fprintf(out, "Dimensions (Width x Height): %.3f x %.3f points\n", b.Width, b.Height)
			fmt.Fprintf(out, "Orientation: %s\n", b.Orientation())
			fmt.Fprintf(out, "Notes area: %s\n", layout.RouteBox(b))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dimsCmd)
}
