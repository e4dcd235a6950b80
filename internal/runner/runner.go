package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/calebfornari/listerine/internal/check"
	"github.com/calebfornari/listerine/internal/config"
	"github.com/calebfornari/listerine/internal/monitor"
)

// Runner owns the monitor registry and the execution engine built from a
// loaded config. It is the bridge between declarative YAML monitors and
// the engine's programmatic contract.
type Runner struct {
	cfg      *config.Config
	registry *monitor.Registry
	engine   *monitor.Engine
	logger   *slog.Logger
}

// New builds every configured monitor (resolving its check URI to an
// assertion and its on_failure hook to a callback), registers them, and
// wires the engine. Definition problems surface here as errors rather
// than at run time.
func New(cfg *config.Config, st monitor.Store, notifier monitor.Notifier, logger *slog.Logger) (*Runner, error) {
	registry := monitor.NewRegistry(st)

	for _, def := range cfg.Monitors {
		m, err := buildMonitor(cfg, def, logger)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(m); err != nil {
			return nil, err
		}
	}

	return &Runner{
		cfg:      cfg,
		registry: registry,
		engine:   monitor.NewEngine(st, notifier, cfg.Recipients, logger),
		logger:   logger,
	}, nil
}

func buildMonitor(cfg *config.Config, def config.MonitorDef, logger *slog.Logger) (*monitor.Monitor, error) {
	timeout, err := parseTimeout(def.Timeout)
	if err != nil {
		return nil, monitor.NewConfigError(def.Name, "invalid timeout %q", def.Timeout)
	}

	assert, err := check.Resolve(def.Check, check.Opts{
		Monitor:   def.Name,
		ChecksDir: cfg.Options.ChecksDir,
		Timeout:   timeout,
		Args:      def.Args,
	})
	if err != nil {
		return nil, fmt.Errorf("monitor %q: %w", def.Name, err)
	}

	mc := monitor.Config{
		Name:            def.Name,
		Assert:          assert,
		NotifyAfter:     def.NotifyAfterValue(),
		ThenNotifyEvery: def.ThenNotifyEveryValue(),
		Environments:    def.Environments,
	}
	for _, l := range def.Levels {
		mc.Levels = append(mc.Levels, monitor.Level{Name: l.Name, Environment: l.Environment})
	}
	if def.OnFailure != "" {
		path, err := check.ResolvePath(def.OnFailure, cfg.Options.ChecksDir)
		if err != nil {
			return nil, fmt.Errorf("monitor %q on_failure: %w", def.Name, err)
		}
		mc.IfFailing = check.FailureHook(path, timeout, logger.With("monitor", def.Name))
	}

	return monitor.New(mc)
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(s)
}

// Registry exposes the monitors built from the config.
func (r *Runner) Registry() *monitor.Registry { return r.registry }

// Result captures one monitor run for display. Errors are stored rather
// than returned so callers always have something to print.
type Result struct {
	Monitor     string
	Environment string
	Outcome     monitor.Outcome
	Duration    time.Duration
	Err         error
}

// RunMonitor executes a single monitor by name in the given environment.
func (r *Runner) RunMonitor(ctx context.Context, name, environment string) (Result, error) {
	m := r.registry.Find(name)
	if m == nil {
		return Result{}, fmt.Errorf("monitor %q not found in config", name)
	}
	return r.runOne(ctx, m, environment), nil
}

// RunAll executes every monitor that applies to the environment,
// sequentially in registration order.
func (r *Runner) RunAll(ctx context.Context, environment string) []Result {
	var results []Result
	for _, m := range r.registry.ForEnvironment(environment) {
		results = append(results, r.runOne(ctx, m, environment))
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, m *monitor.Monitor, environment string) Result {
	start := time.Now()
	out, err := r.engine.Run(ctx, m, environment)
	return Result{
		Monitor:     m.Name(),
		Environment: environment,
		Outcome:     out,
		Duration:    time.Since(start),
		Err:         err,
	}
}
