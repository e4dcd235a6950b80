package check

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/calebfornari/listerine/internal/monitor"
)

// CommandOpts configures a command-backed assertion.
type CommandOpts struct {
	Path    string
	Timeout time.Duration
	Monitor string
	Args    map[string]string
}

// Command builds an assertion that runs an executable. The executable
// must exit 0 and print "true" or "false" on stdout; anything else on
// stdout is a configuration error, since the check is producing
// something other than a boolean verdict. A non-zero exit or a timeout
// counts as an ordinary assertion error, with stderr captured for the
// notification body.
func Command(opts CommandOpts) monitor.Assertion {
	return func(ctx context.Context) (bool, error) {
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(ctx, opts.Path)
		cmd.Env = buildEnv(opts.Monitor, opts.Args)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		if ctx.Err() == context.DeadlineExceeded {
			return false, fmt.Errorf("check timed out after %s", opts.Timeout)
		}
		if err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return false, fmt.Errorf("check failed: %s", msg)
			}
			return false, fmt.Errorf("check failed: %w", err)
		}

		verdict := strings.TrimSpace(stdout.String())
		ok, perr := strconv.ParseBool(verdict)
		if perr != nil {
			return false, monitor.NewConfigError(opts.Monitor,
				"check printed %q, expected a boolean verdict", verdict)
		}
		return ok, nil
	}
}

// FailureHook returns an if_failing callback that executes path with the
// current failure count exported as MONITOR_FAILURES. Hook errors are
// logged and otherwise ignored; a broken hook must not break the run.
func FailureHook(path string, timeout time.Duration, logger *slog.Logger) func(count int) {
	return func(count int) {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(ctx, path)
		cmd.Env = append(cmd.Environ(), "MONITOR_FAILURES="+strconv.Itoa(count))
		if out, err := cmd.CombinedOutput(); err != nil {
			logger.Error("failure hook errored", "path", path, "error", err, "output", strings.TrimSpace(string(out)))
		}
	}
}

func buildEnv(name string, args map[string]string) []string {
	env := []string{"MONITOR_NAME=" + name}
	for k, v := range args {
		env = append(env, "MONITOR_ARG_"+strings.ToUpper(k)+"="+v)
	}
	return env
}
