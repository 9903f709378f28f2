package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. CCGCATALOG_SERVER__PORT
const EnvPrefix = "CCGCATALOG_"

// Config represents the application configuration
type Config struct {
	DataDir   string `toml:"data_dir"`
	AssetsDir string `toml:"assets_dir"`

	Server  ServerConfig  `toml:"server"`
	Search  SearchConfig  `toml:"search"`
	Display DisplayConfig `toml:"display"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	WatchData      bool     `toml:"watch_data"`
}

// SearchConfig configures free-text search
type SearchConfig struct {
	Threshold  float64 `toml:"threshold"`
	MaxResults int     `toml:"max_results"` // 0 = unlimited
}

// DisplayConfig configures terminal output
type DisplayConfig struct {
	View     string `toml:"view"`
	PageSize int    `toml:"page_size"`
	Color    bool   `toml:"color"`
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		DataDir:   filepath.Join(GetXDGDataHome(), "ccgcatalog", "data"),
		AssetsDir: filepath.Join(GetXDGDataHome(), "ccgcatalog"),
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			WatchData:      true,
		},
		Search:  SearchConfig{Threshold: 0.3},
		Display: DisplayConfig{View: "grid", PageSize: 60, Color: true},
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "ccgcatalog", "config.toml")
}

// GetCacheDir returns the directory for generated artifacts
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "ccgcatalog")
}

// LoadConfig loads the config file, creating it with defaults when missing,
// then applies .env and CCGCATALOG_* overrides.
func LoadConfig() (*Config, error) {
	return Load(GetConfigFilePath())
}

// Load reads the config at path. See LoadConfig.
func Load(path string) (*Config, error) {
	var config *Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		config, err = createDefaultConfig(path)
		if err != nil {
			return nil, err
		}
	} else {
		config = Default()
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("error decoding config file: %w", err)
		}
	}

	if err := config.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides overlays CCGCATALOG_* variables, reading a .env file in
// the working directory first when one exists. A double underscore nests:
// CCGCATALOG_SERVER__PORT sets server.port.
func (c *Config) applyEnvOverrides() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading .env: %w", err)
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return fmt.Errorf("error loading environment overrides: %w", err)
	}
	if len(k.Keys()) == 0 {
		return nil
	}

	if err := k.UnmarshalWithConf("", c, koanf.UnmarshalConf{Tag: "toml"}); err != nil {
		return fmt.Errorf("error applying environment overrides: %w", err)
	}
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	if err := config.Save(path); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the config as TOML, creating parent directories
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// SetDataDir updates the data directory in the config file at path
func SetDataDir(path, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("error resolving data directory: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("data directory not found: %s", abs)
	}

	config := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return fmt.Errorf("error decoding config file: %w", err)
		}
	}
	config.DataDir = abs
	return config.Save(path)
}

// ResolveDataDir returns dir when given, the configured directory otherwise
func (c *Config) ResolveDataDir(dir string) string {
	if dir != "" {
		return dir
	}
	return c.DataDir
}

// Validate checks the values commands rely on
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Search.Threshold <= 0 || c.Search.Threshold >= 1 {
		return fmt.Errorf("search threshold must be between 0 and 1, got %v", c.Search.Threshold)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search max_results must not be negative")
	}
	switch c.Display.View {
	case "grid", "list":
	default:
		return fmt.Errorf("invalid display view %q: must be grid or list", c.Display.View)
	}
	if c.Display.PageSize <= 0 {
		return fmt.Errorf("display page_size must be positive")
	}
	return nil
}
