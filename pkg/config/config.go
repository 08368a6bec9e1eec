// Package config provides TOML configuration loading for toolbox.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// DefaultSystemPath is the system-wide config location.
	DefaultSystemPath = "/etc/toolbox/config.toml"
	// DefaultLocalPath is looked up in the working directory first.
	DefaultLocalPath = "toolbox.toml"
)

// Config is the top-level configuration structure.
type Config struct {
	General GeneralConfig `toml:"general"`
	SysInfo SysInfoConfig `toml:"sysinfo"`
	Serve   ServeConfig   `toml:"serve"`
}

// GeneralConfig holds settings shared by every subcommand.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
}

// SysInfoConfig holds settings for the host report.
type SysInfoConfig struct {
	SampleInterval string `toml:"sample_interval"`
	Format         string `toml:"format"`
	HistoryDB      string `toml:"history_db"`
	HistoryKeep    int    `toml:"history_keep"`
}

// ServeConfig holds settings for the HTTP exporter.
type ServeConfig struct {
	Listen         string `toml:"listen"`
	SampleInterval string `toml:"sample_interval"`
	MaxConnections int    `toml:"max_connections"`
	AuthUser       string `toml:"auth_user"`
	AuthBcrypt     string `toml:"auth_bcrypt"`
}

// ParseSampleInterval parses the CPU sampling window of the report.
func (s *SysInfoConfig) ParseSampleInterval() (time.Duration, error) {
	return parseInterval(s.SampleInterval)
}

// ParseSampleInterval parses the CPU sampling window used per scrape.
func (s *ServeConfig) ParseSampleInterval() (time.Duration, error) {
	return parseInterval(s.SampleInterval)
}

func parseInterval(v string) (time.Duration, error) {
	if v == "" {
		return time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative interval %s", v)
	}
	return d, nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.expandPaths()
	return cfg
}

// Load reads and parses a TOML config file, applying defaults for unset values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	cfg.expandPaths()
	return cfg, nil
}

// LoadOptional behaves like Load but returns defaults when the file does not exist.
// Used for auto-discovered paths, where a missing file is normal.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// DiscoverPath returns ./toolbox.toml when it exists, otherwise the system path.
func DiscoverPath() string {
	if _, err := os.Stat(DefaultLocalPath); err == nil {
		return DefaultLocalPath
	}
	return DefaultSystemPath
}

// Resolve loads the config at path. An empty path means auto-discovery,
// where a missing file yields defaults; an explicit path must exist.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	return LoadOptional(DiscoverPath())
}

func (cfg *Config) expandPaths() {
	cfg.SysInfo.HistoryDB = ExpandPath(cfg.SysInfo.HistoryDB)
}

// ExpandPath expands tilde (~) to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}

func applyDefaults(cfg *Config) {
	if cfg.General.LogLevel == "" {
		cfg.General.LogLevel = "info"
	}

	// SysInfo defaults
	if cfg.SysInfo.SampleInterval == "" {
		cfg.SysInfo.SampleInterval = "1s"
	}
	if cfg.SysInfo.Format == "" {
		cfg.SysInfo.Format = "text"
	}
	if cfg.SysInfo.HistoryDB == "" {
		cfg.SysInfo.HistoryDB = "~/.local/share/toolbox/history.db"
	}
	if cfg.SysInfo.HistoryKeep == 0 {
		cfg.SysInfo.HistoryKeep = 100
	}

	// Serve defaults
	if cfg.Serve.Listen == "" {
		cfg.Serve.Listen = "127.0.0.1:9273"
	}
	if cfg.Serve.SampleInterval == "" {
		cfg.Serve.SampleInterval = "1s"
	}
	if cfg.Serve.MaxConnections == 0 {
		cfg.Serve.MaxConnections = 16
	}
}
