package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/parallax/internal/catalog/commons"
	"github.com/spf13/viper"
)

// SourceMode selects where artwork comes from
type SourceMode string

const (
	SourceModeStatic SourceMode = "static"
	SourceModeRemote SourceMode = "remote"
)

// Config holds all application configuration
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Store    StoreConfig    `mapstructure:"store"`
	Opener   OpenerConfig   `mapstructure:"opener"`
	Download DownloadConfig `mapstructure:"download"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SourceConfig holds artwork source configuration
type SourceConfig struct {
	Mode       SourceMode    `mapstructure:"mode"` // "static" or "remote"
	Endpoint   string        `mapstructure:"endpoint"`
	Categories []string      `mapstructure:"categories"`
	PageLimit  int           `mapstructure:"page_limit"`
	MaxOffset  int           `mapstructure:"max_offset"`
	ThumbWidth int           `mapstructure:"thumb_width"`
	UserAgent  string        `mapstructure:"user_agent"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// CacheConfig holds prefetch cache configuration (remote mode only)
type CacheConfig struct {
	Size            int           `mapstructure:"size"`
	MaxFillAttempts int           `mapstructure:"max_fill_attempts"`
	BaseBackoff     time.Duration `mapstructure:"base_backoff"`
	MaxBackoff      time.Duration `mapstructure:"max_backoff"`
}

// StoreConfig holds persisted state configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // empty keeps state in memory only
}

// OpenerConfig holds the command used to open links
type OpenerConfig struct {
	Command string   `mapstructure:"command"` // empty for system default
	Args    []string `mapstructure:"args"`
}

// DownloadConfig holds download configuration
type DownloadConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Mode:       SourceModeStatic,
			Endpoint:   commons.DefaultEndpoint,
			Categories: append([]string(nil), commons.DefaultCategories...),
			PageLimit:  20,
			MaxOffset:  500,
			ThumbWidth: 1920,
			UserAgent:  "parallax/0.1 (https://parallax.kr)",
			RetryDelay: 500 * time.Millisecond,
		},
		Cache: CacheConfig{
			Size:            10,
			MaxFillAttempts: 30,
			BaseBackoff:     250 * time.Millisecond,
			MaxBackoff:      8 * time.Second,
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "state.db"),
		},
		Download: DownloadConfig{
			Dir: defaultDownloadPath(),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "parallax.log"),
			Level: "INFO",
		},
	}
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	switch c.Source.Mode {
	case SourceModeStatic, SourceModeRemote:
	default:
		return fmt.Errorf("unknown source mode %q (want %q or %q)", c.Source.Mode, SourceModeStatic, SourceModeRemote)
	}
	if c.Source.Mode == SourceModeRemote && c.Cache.Size <= 0 {
		return errors.New("cache.size must be positive")
	}
	return nil
}

// IsRemote returns true when artwork is sampled from the remote catalog
func (c *Config) IsRemote() bool {
	return c.Source.Mode == SourceModeRemote
}

// defaultDataPath returns the state/log directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "parallax")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "parallax")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "parallax")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "parallax")
	}
}

func defaultDownloadPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Pictures", "parallax")
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. PARALLAX_SOURCE_MODE=remote
	v.SetEnvPrefix("PARALLAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so env overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source.mode", string(cfg.Source.Mode))
	v.SetDefault("source.endpoint", cfg.Source.Endpoint)
	v.SetDefault("source.categories", cfg.Source.Categories)
	v.SetDefault("source.page_limit", cfg.Source.PageLimit)
	v.SetDefault("source.max_offset", cfg.Source.MaxOffset)
	v.SetDefault("source.thumb_width", cfg.Source.ThumbWidth)
	v.SetDefault("source.user_agent", cfg.Source.UserAgent)
	v.SetDefault("source.retry_delay", cfg.Source.RetryDelay)

	v.SetDefault("cache.size", cfg.Cache.Size)
	v.SetDefault("cache.max_fill_attempts", cfg.Cache.MaxFillAttempts)
	v.SetDefault("cache.base_backoff", cfg.Cache.BaseBackoff)
	v.SetDefault("cache.max_backoff", cfg.Cache.MaxBackoff)

	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("opener.command", cfg.Opener.Command)
	v.SetDefault("opener.args", cfg.Opener.Args)
	v.SetDefault("download.dir", cfg.Download.Dir)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
