package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Storage StorageConfig `mapstructure:"storage"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	ImageBaseURL   string        `mapstructure:"image_base_url"`
	Language       string        `mapstructure:"language"`
	TrendingWindow string        `mapstructure:"trending_window"` // "day" or "week"
	Timeout        time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// PlayerConfig holds the external opener used for trailers and homepages
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"` // "light" or "dark"
	GridColumns int    `mapstructure:"grid_columns"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:        "https://api.themoviedb.org",
			ImageBaseURL:   "https://image.tmdb.org/t/p/",
			Language:       "en-US",
			TrendingWindow: "day",
			Timeout:        30 * time.Second,
		},
		Storage: StorageConfig{
			DataDir: defaultDataPath(),
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			Theme:       "light",
			GridColumns: 0, // fit to width
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// ConfigFilePath returns the file SaveConfig writes to
func ConfigFilePath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// newViper builds a viper instance with defaults and environment bindings.
// Env vars use the MARQUEE_ prefix with dots replaced by underscores
// (MARQUEE_TMDB_API_KEY).
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be registered for AutomaticEnv to see nested keys
	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", cfg.TMDB.Language)
	v.SetDefault("tmdb.trending_window", cfg.TMDB.TrendingWindow)
	v.SetDefault("tmdb.timeout", cfg.TMDB.Timeout)
	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.grid_columns", cfg.UI.GridColumns)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	return v
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigDir(), ".")
}

// LoadConfigFrom loads configuration searching the given directories in order
func LoadConfigFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Read config file if it exists
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

	cfg.Logging.File = expandHome(cfg.Logging.File)
	cfg.Storage.DataDir = expandHome(cfg.Storage.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways
func (c *Config) Validate() error {
	switch c.TMDB.TrendingWindow {
	case "day", "week":
	default:
		return fmt.Errorf("tmdb.trending_window must be \"day\" or \"week\", got %q", c.TMDB.TrendingWindow)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "light", "dark", "":
	default:
		return fmt.Errorf("ui.theme must be \"light\" or \"dark\", got %q", c.UI.Theme)
	}
	if c.UI.GridColumns < 0 {
		return fmt.Errorf("ui.grid_columns must not be negative")
	}
	return nil
}

// SaveConfig writes cfg to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, DefaultConfigDir())
}

// SaveConfigTo writes cfg as config.yaml inside dir
func SaveConfigTo(cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.trending_window", cfg.TMDB.TrendingWindow)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())

	v.Set("storage.data_dir", cfg.Storage.DataDir)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.grid_columns", cfg.UI.GridColumns)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds the API key
	if err := os.Chmod(configFile, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key is available
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
