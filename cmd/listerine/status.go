package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/calebfornari/listerine/internal/config"
	"github.com/calebfornari/listerine/internal/store"
	"github.com/calebfornari/listerine/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest outcome of every monitor",
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.Options.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if watch && isatty.IsTerminal(os.Stdout.Fd()) {
			_, err := tea.NewProgram(tui.NewModel(st, 2*time.Second)).Run()
			return err
		}
		return printStatus(st)
	},
}

func init() {
	statusCmd.Flags().Bool("watch", false, "interactive view, refreshed live")
	rootCmd.AddCommand(statusCmd)
}

func printStatus(st *store.Store) error {
	latest, err := st.LatestOutcomes()
	if err != nil {
		return err
	}
	if len(latest) == 0 {
		fmt.Println("no outcomes recorded yet")
		return nil
	}

	fmt.Printf("%-24s %-14s %-10s %-9s %s\n", "MONITOR", "ENVIRONMENT", "STATUS", "FAILURES", "LAST RUN")
	for _, r := range latest {
		fmt.Printf("%-24s %-14s %-10s %-9d %s\n",
			r.Monitor,
			r.Environment,
			r.Status,
			st.FailureCount(r.Monitor, r.Environment),
			r.RecordedAt.Format(time.RFC3339),
		)
	}
	return nil
}
