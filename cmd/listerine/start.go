package main

import (
	"context"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/calebfornari/listerine/internal/config"
	"github.com/calebfornari/listerine/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the monitoring daemon",
	Long: "Runs every configured monitor on its schedule until interrupted. " +
		"The config file is watched; edits are applied without a restart.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d := &daemon{logger: logger}
		if err := d.reload(ctx); err != nil {
			return err
		}
		defer d.shutdown()

		// Watch the file actually in use so edits trigger a reload.
		watchPath, err := config.FindPath(cfgFile)
		if err == nil {
			err := scheduler.WatchConfig(ctx, watchPath, logger, func() {
				logger.Info("config changed, reloading")
				if err := d.reload(ctx); err != nil {
					logger.Error("reload failed, keeping previous config", "error", err)
				}
			})
			if err != nil {
				logger.Warn("config watch unavailable", "error", err)
			}
		}

		logger.Info("daemon started")
		<-ctx.Done()
		logger.Info("shutting down")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// daemon holds the running scheduler and its app wiring, swapped
// atomically on reload.
type daemon struct {
	logger *slog.Logger

	mu    sync.Mutex
	app   *app
	sched *scheduler.Scheduler
}

// reload builds a fresh app and scheduler from the current config and
// swaps out the old pair. On error the previous state keeps running.
func (d *daemon) reload(ctx context.Context) error {
	a, err := setup(d.logger, false)
	if err != nil {
		return err
	}

	sched := scheduler.New(d.logger)
	environment := activeEnvironment(a.cfg)
	for _, def := range a.cfg.Monitors {
		m := a.runner.Registry().Find(def.Name)
		if m == nil || !m.InEnvironment(environment) {
			continue
		}
		name := def.Name
		if err := sched.Add(def.Schedule, func() {
			if _, err := a.runner.RunMonitor(ctx, name, environment); err != nil {
				d.logger.Error("monitor run aborted", "monitor", name, "error", err)
			}
		}); err != nil {
			a.close()
			return err
		}
	}
	sched.Start()

	d.mu.Lock()
	oldApp, oldSched := d.app, d.sched
	d.app, d.sched = a, sched
	d.mu.Unlock()

	if oldSched != nil {
		oldSched.Stop()
	}
	if oldApp != nil {
		oldApp.close()
	}
	return nil
}

func (d *daemon) shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sched != nil {
		d.sched.Stop()
	}
	if d.app != nil {
		d.app.close()
	}
}
