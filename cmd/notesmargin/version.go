package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/notesmargin/pkg/logger"
	"github.com/kpauljoseph/notesmargin/pkg/updater"
	"github.com/kpauljoseph/notesmargin/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of notesmargin",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprint(out, version.GetDetailedVersionInfo())
		} else {
			fmt.Fprintln(out, version.GetVersionInfo())
		}

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}

		cmd.SilenceUsage = true
		checker := updater.NewChecker("", logger.New(logger.WithPrefix("[notesmargin] ")))
		info, err := checker.CheckForUpdates(cmd.Context())
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		if info.IsAvailable {
			fmt.Fprintf(out, "A newer version is available: %s (%s)\n", info.LatestVersion, info.ReleaseURL)
		} else {
			fmt.Fprintln(out, "notesmargin is up to date")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "check GitHub for a newer release")

	rootCmd.AddCommand(versionCmd)
}
