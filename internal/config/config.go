package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/boxfit/internal/matcher"
	"github.com/eugenenazirov/boxfit/internal/presenter"
)

const (
	defaultBoxFile        = "boxes.tsv"
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	BoxFile              string
	Results              int
	Format               presenter.Format
	LogLevel             string
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	BoxFile              string        `yaml:"box_file"`
	Results              int           `yaml:"results"`
	Format               string        `yaml:"format"`
	LogLevel             string        `yaml:"log_level"`
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides. Nil fields are not set.
type CLIOverrides struct {
	ConfigFile     string
	BoxFile        *string
	Results        *int
	Format         *string
	LogLevel       *string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Environment variables sit just above the defaults.
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, err
		}
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		BoxFile:              defaultBoxFile,
		Results:              matcher.DefaultResults,
		Format:               presenter.Text,
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg yamlConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &cfg, nil
}

func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.BoxFile != "" {
		cfg.BoxFile = yamlCfg.BoxFile
	}

	if yamlCfg.Results != 0 {
		cfg.Results = yamlCfg.Results
	}

	if yamlCfg.Format != "" {
		format, err := presenter.ParseFormat(yamlCfg.Format)
		if err != nil {
			return err
		}
		cfg.Format = format
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	durations := []struct {
		raw    string
		target *time.Duration
		name   string
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod, "shutdown_grace_period"},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout, "write_timeout"},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout, "idle_timeout"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		value, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.name, err)
		}
		*d.target = value
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	return nil
}

func applyEnvConfig(cfg *Config) error {
	if boxFile := strings.TrimSpace(os.Getenv("BOXFIT_BOXFILE")); boxFile != "" {
		cfg.BoxFile = boxFile
	}

	if results := strings.TrimSpace(os.Getenv("BOXFIT_RESULTS")); results != "" {
		value, err := strconv.Atoi(results)
		if err != nil {
			return fmt.Errorf("BOXFIT_RESULTS: invalid integer %q", results)
		}
		cfg.Results = value
	}

	if rawFormat := strings.TrimSpace(os.Getenv("BOXFIT_FORMAT")); rawFormat != "" {
		format, err := presenter.ParseFormat(rawFormat)
		if err != nil {
			return fmt.Errorf("BOXFIT_FORMAT: %w", err)
		}
		cfg.Format = format
	}

	if level := strings.TrimSpace(os.Getenv("BOXFIT_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		value, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: invalid number %q", rps)
		}
		cfg.RateLimitRPS = value
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		value, err := strconv.Atoi(burst)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: invalid integer %q", burst)
		}
		cfg.RateLimitBurst = value
	}

	return nil
}

func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.BoxFile != nil && *overrides.BoxFile != "" {
		cfg.BoxFile = *overrides.BoxFile
	}

	if overrides.Results != nil {
		cfg.Results = *overrides.Results
	}

	if overrides.Format != nil && *overrides.Format != "" {
		format, err := presenter.ParseFormat(*overrides.Format)
		if err != nil {
			return err
		}
		cfg.Format = format
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Results <= 0 {
		return fmt.Errorf("results must be > 0, got %d", cfg.Results)
	}
	if cfg.BoxFile == "" {
		return fmt.Errorf("box file cannot be empty")
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	return nil
}
