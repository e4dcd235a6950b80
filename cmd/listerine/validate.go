package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without running anything",
	Long: "Loads the config, builds every monitor (resolving check executables " +
		"and thresholds), and checks each referenced notification service.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		a, err := setup(logger, true)
		if err != nil {
			return err
		}
		defer a.close()

		for level, recipient := range a.cfg.Recipients {
			if err := a.notifier.Validate(recipient); err != nil {
				return fmt.Errorf("recipient for level %q: %w", level, err)
			}
		}

		fmt.Printf("config ok: %d monitor(s), %d service(s)\n",
			len(a.cfg.Monitors), len(a.cfg.Services))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
