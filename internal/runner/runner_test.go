package runner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calebfornari/listerine/internal/config"
	"github.com/calebfornari/listerine/internal/monitor"
	"github.com/calebfornari/listerine/internal/store"
)

type captureNotifier struct {
	delivered []string
}

func (n *captureNotifier) Deliver(recipient, subject, body string) error {
	n.delivered = append(n.delivered, recipient+": "+subject)
	return nil
}

func writeScript(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "listerine.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunner_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "always_false", "#!/bin/sh\necho false\n")

	two := 2
	cfg := &config.Config{
		Options:    config.Options{ChecksDir: dir},
		Recipients: map[string]string{monitor.DefaultLevel: "ops"},
		Monitors: []config.MonitorDef{
			{
				Name:        "flappy",
				Check:       "file://always_false",
				NotifyAfter: &two,
			},
		},
	}

	st := openStore(t)
	notifier := &captureNotifier{}
	r, err := New(cfg, st, notifier, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()

	res, err := r.RunMonitor(ctx, "flappy", "production")
	if err != nil {
		t.Fatalf("RunMonitor: %v", err)
	}
	if !res.Outcome.IsFailure() {
		t.Errorf("status = %q, want %q", res.Outcome.Status, monitor.StatusFailure)
	}
	if len(notifier.delivered) != 0 {
		t.Fatalf("deliveries after 1 failure = %d, want 0", len(notifier.delivered))
	}

	if _, err := r.RunMonitor(ctx, "flappy", "production"); err != nil {
		t.Fatalf("RunMonitor: %v", err)
	}
	if len(notifier.delivered) != 1 {
		t.Fatalf("deliveries after 2 failures = %d, want 1", len(notifier.delivered))
	}
	if !strings.Contains(notifier.delivered[0], "ops") {
		t.Errorf("delivery = %q, want recipient ops", notifier.delivered[0])
	}

	// Counter survives in the store across runner instances.
	v, ok, err := st.Read("flappy:failures", "production")
	if err != nil || !ok || v != "2" {
		t.Errorf("stored counter = (%q, %v, %v), want (\"2\", true, nil)", v, ok, err)
	}
}

func TestRunner_UnknownMonitor(t *testing.T) {
	cfg := &config.Config{
		Monitors: []config.MonitorDef{
			{Name: "real", Check: "https://example.com/"},
		},
	}
	r, err := New(cfg, openStore(t), &captureNotifier{}, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.RunMonitor(context.Background(), "fake", ""); err == nil {
		t.Fatal("expected error for unknown monitor")
	}
}

func TestRunner_MissingCheckFailsConstruction(t *testing.T) {
	cfg := &config.Config{
		Options: config.Options{ChecksDir: t.TempDir()},
		Monitors: []config.MonitorDef{
			{Name: "ghost", Check: "file://does_not_exist"},
		},
	}
	if _, err := New(cfg, openStore(t), &captureNotifier{}, testLogger()); err == nil {
		t.Fatal("expected construction error for missing check executable")
	}
}

func TestRunner_RunAllHonorsEnvironmentScope(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ok", "#!/bin/sh\necho true\n")

	cfg := &config.Config{
		Options: config.Options{ChecksDir: dir},
		Monitors: []config.MonitorDef{
			{Name: "prod_only", Check: "file://ok", Environments: []string{"production"}},
			{Name: "everywhere", Check: "file://ok"},
		},
	}
	r, err := New(cfg, openStore(t), &captureNotifier{}, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results := r.RunAll(context.Background(), "staging")
	if len(results) != 1 || results[0].Monitor != "everywhere" {
		t.Errorf("staging results = %+v, want just everywhere", results)
	}

	results = r.RunAll(context.Background(), "production")
	if len(results) != 2 {
		t.Errorf("production results = %d, want 2", len(results))
	}
}

func TestRunner_OnFailureHook(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "fail", "#!/bin/sh\necho false\n")
	marker := filepath.Join(dir, "hook_count")
	writeScript(t, dir, "hook", "#!/bin/sh\necho $MONITOR_FAILURES > "+marker+"\n")

	cfg := &config.Config{
		Options: config.Options{ChecksDir: dir},
		Monitors: []config.MonitorDef{
			{Name: "hooked", Check: "file://fail", OnFailure: "file://hook"},
		},
	}
	r, err := New(cfg, openStore(t), &captureNotifier{}, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := r.RunMonitor(context.Background(), "hooked", ""); err != nil {
		t.Fatalf("RunMonitor: %v", err)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("hook did not run: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "1" {
		t.Errorf("hook saw count %q, want %q", got, "1")
	}
}
