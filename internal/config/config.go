package config

import (
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

type Config struct {
	DefaultEnvironment string             `yaml:"default_environment"`
	Options            Options            `yaml:"options"`
	Services           map[string]Service `yaml:"services" validate:"dive"`
	Recipients         map[string]string  `yaml:"recipients"`
	Monitors           []MonitorDef       `yaml:"monitors" validate:"required,dive"`
}

type Options struct {
	ChecksDir string `yaml:"checks_dir"`
	DBPath    string `yaml:"db_path"`
	NATSURL   string `yaml:"nats_url"`
}

type Service struct {
	URL      string            `yaml:"url" validate:"required"`
	Template string            `yaml:"template"`
	Params   map[string]string `yaml:"params"`
}

type MonitorDef struct {
	Name            string            `yaml:"name" validate:"required"`
	Check           string            `yaml:"check" validate:"required"`
	Timeout         string            `yaml:"timeout"`
	Schedule        string            `yaml:"schedule"`
	NotifyAfter     *int              `yaml:"notify_after" validate:"omitempty,gte=1"`
	ThenNotifyEvery *int              `yaml:"then_notify_every" validate:"omitempty,gte=1"`
	Environments    []string          `yaml:"environments"`
	Levels          []LevelDef        `yaml:"levels" validate:"dive"`
	OnFailure       string            `yaml:"on_failure"`
	Args            map[string]string `yaml:"args"`
}

// NotifyAfterValue returns notify_after, defaulting to 1 when omitted.
// An explicit zero or negative value fails validation instead.
func (m MonitorDef) NotifyAfterValue() int {
	if m.NotifyAfter == nil {
		return 1
	}
	return *m.NotifyAfter
}

// ThenNotifyEveryValue returns then_notify_every, defaulting to 1 when
// omitted.
func (m MonitorDef) ThenNotifyEveryValue() int {
	if m.ThenNotifyEvery == nil {
		return 1
	}
	return *m.ThenNotifyEvery
}

// LevelDef handles a plain level-name string (the monitor's default
// level) or an object with an environment override.
type LevelDef struct {
	Name        string `yaml:"level" validate:"required"`
	Environment string `yaml:"environment"`
}

func (l *LevelDef) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err == nil {
		l.Name = str
		return nil
	}

	type levelAlias LevelDef
	var obj levelAlias
	if err := unmarshal(&obj); err != nil {
		return fmt.Errorf("level: must be a level name string or an object with level/environment")
	}
	*l = LevelDef(obj)
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
