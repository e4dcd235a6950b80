package check

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calebfornari/listerine/internal/monitor"
)

func writeExecutable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func tempScript(t *testing.T, content string) string {
	t.Helper()
	return writeExecutable(t, t.TempDir(), "check.sh", content)
}

func TestCommand_True(t *testing.T) {
	script := tempScript(t, "#!/bin/sh\necho true\n")

	ok, err := Command(CommandOpts{Path: script, Monitor: "m"})(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("verdict = false, want true")
	}
}

func TestCommand_False(t *testing.T) {
	script := tempScript(t, "#!/bin/sh\necho false\n")

	ok, err := Command(CommandOpts{Path: script, Monitor: "m"})(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("verdict = true, want false")
	}
}

func TestCommand_NonBooleanIsConfigError(t *testing.T) {
	script := tempScript(t, "#!/bin/sh\necho maybe\n")

	_, err := Command(CommandOpts{Path: script, Monitor: "m"})(context.Background())
	if err == nil {
		t.Fatal("expected error for non-boolean output")
	}
	if !monitor.IsConfigError(err) {
		t.Errorf("error = %v, want ConfigError", err)
	}
}

func TestCommand_NonZeroExitIsAssertionError(t *testing.T) {
	script := tempScript(t, "#!/bin/sh\necho 'disk probe exploded' >&2\nexit 3\n")

	_, err := Command(CommandOpts{Path: script, Monitor: "m"})(context.Background())
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if monitor.IsConfigError(err) {
		t.Errorf("error = %v, want ordinary assertion error, not ConfigError", err)
	}
	if !strings.Contains(err.Error(), "disk probe exploded") {
		t.Errorf("error = %q, want captured stderr", err.Error())
	}
}

func TestCommand_Timeout(t *testing.T) {
	script := tempScript(t, "#!/bin/sh\nsleep 10\n")

	_, err := Command(CommandOpts{Path: script, Monitor: "m", Timeout: 100 * time.Millisecond})(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %q, want timeout message", err.Error())
	}
}

func TestCommand_EnvArgs(t *testing.T) {
	// The script sees the monitor name and args but must still print a
	// boolean; it uses the arg to decide the verdict.
	script := tempScript(t, "#!/bin/sh\nif [ \"$MONITOR_ARG_MOUNT\" = \"/data\" ] && [ \"$MONITOR_NAME\" = \"disk\" ]; then echo true; else echo false; fi\n")

	ok, err := Command(CommandOpts{
		Path:    script,
		Monitor: "disk",
		Args:    map[string]string{"mount": "/data"},
	})(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("verdict = false, want true (env args not injected?)")
	}
}

func TestFailureHook(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "count")
	script := writeExecutable(t, dir, "hook.sh", "#!/bin/sh\necho $MONITOR_FAILURES > "+marker+"\n")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	FailureHook(script, time.Second, logger)(4)

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("hook did not run: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "4" {
		t.Errorf("hook saw count %q, want %q", got, "4")
	}
}
