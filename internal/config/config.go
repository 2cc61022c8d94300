// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// MinSearchDebounce is the shortest quiet period allowed before a catalog search is issued.
const MinSearchDebounce = 500 * time.Millisecond

// Catalog feature override values.
const (
	CatalogAuto = "auto" // ask the backend configuration service
	CatalogOn   = "on"
	CatalogOff  = "off"
)

// Config holds all configuration values for attachr.
type Config struct {
	BackendURL     string        `mapstructure:"backend_url" yaml:"backend_url"`
	ProxyURL       string        `mapstructure:"proxy_url" yaml:"proxy_url"`
	PublishableKey string        `mapstructure:"publishable_key" yaml:"publishable_key"`
	Token          string        `mapstructure:"token" yaml:"token,omitempty"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	DataDir        string        `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
	SearchDebounce time.Duration `mapstructure:"search_debounce" yaml:"search_debounce"`
	PageSize       int           `mapstructure:"page_size" yaml:"page_size"`
	Catalog        string        `mapstructure:"catalog" yaml:"catalog"`
	ProxyListen    string        `mapstructure:"proxy_listen" yaml:"proxy_listen"`
}

// envKeys lists every key that can be overridden through ATTACHR_* variables.
var envKeys = []string{
	"backend_url",
	"proxy_url",
	"publishable_key",
	"token",
	"request_timeout",
	"data_dir",
	"log_level",
	"log_file",
	"search_debounce",
	"page_size",
	"catalog",
	"proxy_listen",
}

// Defaults returns a config populated with default values.
func Defaults() *Config {
	return &Config{
		RequestTimeout: 15 * time.Second,
		DataDir:        ".attachr",
		LogLevel:       "info",
		SearchDebounce: MinSearchDebounce,
		PageSize:       10,
		Catalog:        CatalogAuto,
		ProxyListen:    ":8787",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars (.env included) > project config > XDG global config > defaults
func Load() (*Config, error) {
	// A missing .env is normal; variables already set in the environment win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("attachr")

	d := Defaults()
	v.SetDefault("backend_url", d.BackendURL)
	v.SetDefault("proxy_url", d.ProxyURL)
	v.SetDefault("publishable_key", d.PublishableKey)
	v.SetDefault("token", d.Token)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("search_debounce", d.SearchDebounce)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("catalog", d.Catalog)
	v.SetDefault("proxy_listen", d.ProxyListen)

	v.SetEnvPrefix("ATTACHR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "ATTACHR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the values that the rest of the program relies on.
func (c *Config) Validate() error {
	var errs []error
	if c.BackendURL == "" && c.ProxyURL == "" {
		errs = append(errs, errors.New("backend_url or proxy_url must be set"))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", c.PageSize))
	}
	if c.SearchDebounce < MinSearchDebounce {
		errs = append(errs, fmt.Errorf("search_debounce must be at least %s, got %s", MinSearchDebounce, c.SearchDebounce))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout))
	}
	switch c.Catalog {
	case CatalogAuto, CatalogOn, CatalogOff:
	default:
		errs = append(errs, fmt.Errorf("catalog must be one of auto, on, off, got %q", c.Catalog))
	}
	return errors.Join(errs...)
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/attachr/attachr.yml or $XDG_CONFIG_HOME/attachr/attachr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "attachr", "attachr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "attachr", "attachr.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "attachr.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// The file may hold an API token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
