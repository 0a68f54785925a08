package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "flowrpg"
	fileName     = "config.yaml"
	DataDirEnv   = "FLOWRPG_DATA_DIR"
	defaultLevel = "info"
)

type Config struct {
	DataDir       string `yaml:"-"`
	StatePath     string `yaml:"-"`
	DBPath        string `yaml:"-"`
	ChroniclePath string `yaml:"-"`
	PluginsDir    string `yaml:"-"`
	LogPath       string `yaml:"-"`

	LogLevel     string        `yaml:"log_level" env:"FLOWRPG_LOG_LEVEL"`
	LogJSON      bool          `yaml:"log_json" env:"FLOWRPG_LOG_JSON"`
	TickInterval time.Duration `yaml:"tick" env:"FLOWRPG_TICK"`
	Bell         bool          `yaml:"bell" env:"FLOWRPG_BELL"`
	Plugins      bool          `yaml:"plugins" env:"FLOWRPG_PLUGINS"`

	// Boss name tables; both must be non-empty to replace the built-in ones.
	BossPrefixes []string `yaml:"boss_prefixes"`
	BossSuffixes []string `yaml:"boss_suffixes"`
}

// New derives every path from the data directory and applies defaults.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:       dataDir,
		StatePath:     filepath.Join(dataDir, "state.json"),
		DBPath:        filepath.Join(dataDir, "flowrpg.db"),
		ChroniclePath: filepath.Join(dataDir, "chronicle.md"),
		PluginsDir:    dataDir,
		LogPath:       filepath.Join(dataDir, "flowrpg.log"),
		LogLevel:      defaultLevel,
		TickInterval:  time.Second,
		Bell:          true,
		Plugins:       true,
	}, nil
}

// Load builds the default config for dataDir, then overlays config.yaml from
// the data directory and finally FLOWRPG_* environment variables.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(filepath.Join(dataDir, fileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", fileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read %s: %w", fileName, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLevel
	}
	return cfg, nil
}

// DefaultDataDir resolves the data directory when no flag is given:
// FLOWRPG_DATA_DIR, then the user config dir.
func DefaultDataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(base, appName)
}
