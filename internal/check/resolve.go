package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/calebfornari/listerine/internal/monitor"
)

// Opts carries everything needed to turn a check URI into an assertion.
type Opts struct {
	Monitor   string
	ChecksDir string
	Timeout   time.Duration
	Args      map[string]string
}

// Resolve maps a check URI to a monitor assertion.
//
// Supported schemes:
//   - file://name      → executable at filepath.Join(ChecksDir, name)
//   - file:///abs/path → absolute executable path as-is
//   - http(s)://...    → URL reachability check
func Resolve(uri string, opts Opts) (monitor.Assertion, error) {
	switch {
	case strings.HasPrefix(uri, "file://"):
		path, err := resolveFile(uri, opts.ChecksDir)
		if err != nil {
			return nil, err
		}
		return Command(CommandOpts{
			Path:    path,
			Timeout: opts.Timeout,
			Monitor: opts.Monitor,
			Args:    opts.Args,
		}), nil
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return URL(uri, opts.Timeout), nil
	default:
		return nil, monitor.NewConfigError(opts.Monitor, "unsupported check URI scheme: %s", uri)
	}
}

// ResolvePath resolves a file:// URI to an executable path without
// building an assertion, for hook commands.
func ResolvePath(uri, checksDir string) (string, error) {
	if !strings.HasPrefix(uri, "file://") {
		return "", fmt.Errorf("unsupported hook URI scheme: %s", uri)
	}
	return resolveFile(uri, checksDir)
}

func resolveFile(uri, checksDir string) (string, error) {
	raw := strings.TrimPrefix(uri, "file://")

	var path string
	if strings.HasPrefix(raw, "/") {
		path = raw
	} else {
		path = filepath.Join(checksDir, raw)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("check not found: %s", path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("check is a directory: %s", path)
	}
	if info.Mode()&0111 == 0 {
		return "", fmt.Errorf("check is not executable: %s", path)
	}

	return path, nil
}
