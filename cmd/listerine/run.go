package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/calebfornari/listerine/internal/monitor"
	"github.com/calebfornari/listerine/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run [monitor_name]",
	Short: "Run monitors once",
	Long: "Runs a single monitor by name, or every monitor that applies to the " +
		"active environment. Use --dry-run to validate notifications without sending.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		logger := setupLogger()

		a, err := setup(logger, dryRun)
		if err != nil {
			return err
		}
		defer a.close()

		environment := activeEnvironment(a.cfg)
		ctx := context.Background()

		var results []runner.Result
		if len(args) == 1 {
			res, err := a.runner.RunMonitor(ctx, args[0], environment)
			if err != nil {
				return err
			}
			results = append(results, res)
		} else {
			results = a.runner.RunAll(ctx, environment)
		}

		failed := false
		for _, res := range results {
			printResult(res)
			if res.Err != nil || res.Outcome.IsFailure() {
				failed = true
			}
		}

		if failed {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "validate notifications without sending them")
	rootCmd.AddCommand(runCmd)
}

func printResult(res runner.Result) {
	tag := res.Monitor
	if res.Environment != "" {
		tag += " [" + res.Environment + "]"
	}

	if res.Err != nil {
		fmt.Printf("✗ %s\n  Error: %s\n", tag, res.Err)
		return
	}

	switch res.Outcome.Status {
	case monitor.StatusSuccess:
		fmt.Printf("✓ %s (%s)\n", tag, res.Duration.Round(time.Millisecond))
	case monitor.StatusDisabled:
		fmt.Printf("- %s disabled\n", tag)
	default:
		fmt.Printf("✗ %s failing (%s)\n", tag, res.Duration.Round(time.Millisecond))
		if res.Outcome.Diagnostic != "" {
			fmt.Printf("  %s\n", res.Outcome.Diagnostic)
		}
	}
}
