package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigPaths returns the locations searched when no explicit
// --config path is given, in priority order.
func DefaultConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "listerine", "config.yaml"))
	}
	return append(paths, "/etc/listerine/config.yaml")
}

// Resolve loads the config from the given explicit path, or searches the
// default locations. Omitted options get usable defaults.
func Resolve(explicit string) (*Config, error) {
	path, err := FindPath(explicit)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if cfg.Options.DBPath == "" {
		cfg.Options.DBPath = "listerine.db"
	}
	if cfg.Options.ChecksDir == "" {
		cfg.Options.ChecksDir = filepath.Join(filepath.Dir(path), "checks")
	}

	return cfg, nil
}

// FindPath returns the config file in use: the explicit path when given,
// otherwise the first default location that exists.
func FindPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	candidates := DefaultConfigPaths()
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("no config file in %s", strings.Join(candidates, ", "))
}
