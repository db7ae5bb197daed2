package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBackendURL      = "http://localhost:8000"
	defaultLogPollInterval = 2 * time.Second
	defaultPendingInterval = 3 * time.Second
)

type Config struct {
	DataDir    string
	DBPath     string
	LogPath    string
	BackendURL string

	// PresetsPath points at an optional Lua presets script.
	PresetsPath string

	LogPollInterval time.Duration
	PendingInterval time.Duration
}

// fileConfig is the optional YAML config file layout.
type fileConfig struct {
	BackendURL        string `yaml:"backend_url"`
	LogPollIntervalMS int    `yaml:"log_poll_interval_ms"`
	PendingIntervalMS int    `yaml:"pending_interval_ms"`
}

// New builds the config from defaults, an optional config.yaml in the
// data dir, and env overrides, in that precedence order.
func New() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dataDir := getEnv("FPOS_DATA_DIR", filepath.Join(homeDir, ".fpos"))

	c := &Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, "fpos.db"),
		LogPath:         filepath.Join(dataDir, "fpos.log"),
		BackendURL:      defaultBackendURL,
		PresetsPath:     filepath.Join(dataDir, "presets.lua"),
		LogPollInterval: defaultLogPollInterval,
		PendingInterval: defaultPendingInterval,
	}

	if err := c.loadFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return nil, err
	}

	c.BackendURL = getEnv("FPOS_BACKEND_URL", c.BackendURL)
	if v, exists := os.LookupEnv("FPOS_LOG_POLL_MS"); exists {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FPOS_LOG_POLL_MS %q: %w", v, err)
		}
		c.LogPollInterval = time.Duration(ms) * time.Millisecond
	}

	return c, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if fc.BackendURL != "" {
		c.BackendURL = fc.BackendURL
	}
	if fc.LogPollIntervalMS > 0 {
		c.LogPollInterval = time.Duration(fc.LogPollIntervalMS) * time.Millisecond
	}
	if fc.PendingIntervalMS > 0 {
		c.PendingInterval = time.Duration(fc.PendingIntervalMS) * time.Millisecond
	}

	return nil
}

func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
