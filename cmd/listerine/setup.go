package main

import (
	"log/slog"

	"github.com/calebfornari/listerine/internal/config"
	"github.com/calebfornari/listerine/internal/events"
	"github.com/calebfornari/listerine/internal/monitor"
	"github.com/calebfornari/listerine/internal/notify"
	"github.com/calebfornari/listerine/internal/runner"
	"github.com/calebfornari/listerine/internal/store"
)

// app bundles everything a command needs after config is loaded.
type app struct {
	cfg      *config.Config
	store    *store.Store
	notifier *notify.Shoutrrr
	runner   *runner.Runner
	pub      *events.Publisher
	logger   *slog.Logger
}

// setup loads the config and wires store, notifier, optional event
// publisher, and runner. Call close when done.
func setup(logger *slog.Logger, dryRun bool) (*app, error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Options.DBPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, store: st, logger: logger}
	a.notifier = notify.NewShoutrrr(notifyServices(cfg), logger)

	var engineStore monitor.Store = st
	if cfg.Options.NATSURL != "" {
		pub, err := events.Connect(cfg.Options.NATSURL, "", logger)
		if err != nil {
			st.Close()
			return nil, err
		}
		a.pub = pub
		engineStore = &events.PublishingStore{Store: st, Publisher: pub}
	}

	var notifier monitor.Notifier = a.notifier
	if dryRun {
		notifier = &notify.DryRun{Notifier: a.notifier, Logger: logger}
	}

	a.runner, err = runner.New(cfg, engineStore, notifier, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	if a.pub != nil {
		a.pub.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

func notifyServices(cfg *config.Config) map[string]notify.Service {
	services := make(map[string]notify.Service, len(cfg.Services))
	for name, svc := range cfg.Services {
		services[name] = notify.Service{
			URL:      svc.URL,
			Template: svc.Template,
			Params:   svc.Params,
		}
	}
	return services
}
