package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
}

type ProviderConfig struct {
	Type    string
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type CacheConfig struct {
	TTL           time.Duration
	Size          int
	SweepInterval time.Duration
}

type SyncConfig struct {
	Enabled  bool
	Interval time.Duration
	Timeout  time.Duration
}

type SeedConfig struct {
	FilePath string
	Watch    bool
}

type MiscConfig struct {
	LogLevel      string
	GinMode       string
	Timezone      string
	ReferenceDate string
	// Error reporting is off when HoneybadgerAPIKey is empty.
	HoneybadgerAPIKey string
	Environment       string
}

type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Cache    CacheConfig
	Sync     SyncConfig
	Seed     SeedConfig
	Misc     MiscConfig
}

// LoadConfig reads configuration from .env, an optional config.yaml and RAILOPS_* env vars,
// in increasing order of precedence. PORT and GEMINI_API_KEY are honored as well.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithComponent("config").Warnf("cannot read .env file: %v", err)
	}

	confPath := getEnvOrDefault("RAILOPS_CONFIG_PATH", "./config")
	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(confPath)
	viper.AddConfigPath(".")

	setDefaults()

	// RAILOPS_CACHE_TTL overrides cache.ttl
	viper.SetEnvPrefix("RAILOPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Debug("no config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort("PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        viper.GetDuration("server.read_timeout"),
			WriteTimeout:       viper.GetDuration("server.write_timeout"),
			IdleTimeout:        viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     viper.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: viper.GetString("server.cors_allowed_origins"),
		},
		Provider: ProviderConfig{
			Type:    strings.ToLower(viper.GetString("provider.type")),
			APIKey:  getEnvOrDefault("GEMINI_API_KEY", viper.GetString("provider.api_key")),
			Model:   viper.GetString("provider.model"),
			BaseURL: viper.GetString("provider.base_url"),
			Timeout: viper.GetDuration("provider.timeout"),
		},
		Cache: CacheConfig{
			TTL:           viper.GetDuration("cache.ttl"),
			Size:          viper.GetInt("cache.size"),
			SweepInterval: viper.GetDuration("cache.sweep_interval"),
		},
		Sync: SyncConfig{
			Enabled:  viper.GetBool("sync.enabled"),
			Interval: viper.GetDuration("sync.interval"),
			Timeout:  viper.GetDuration("sync.timeout"),
		},
		Seed: SeedConfig{
			FilePath: viper.GetString("seed.file_path"),
			Watch:    viper.GetBool("seed.watch"),
		},
		Misc: MiscConfig{
			LogLevel:      viper.GetString("misc.log_level"),
			GinMode:       viper.GetString("misc.gin_mode"),
			Timezone:      viper.GetString("misc.timezone"),
			ReferenceDate: viper.GetString("misc.reference_date"),

			HoneybadgerAPIKey: getEnvOrDefault("HONEYBADGER_API_KEY", viper.GetString("misc.honeybadger_api_key")),
			Environment:       getEnvOrDefault("GO_ENV", viper.GetString("misc.environment")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.shutdown_timeout", "5s")
	viper.SetDefault("server.request_timeout", "45s")
	viper.SetDefault("server.cors_allowed_origins", "*")

	viper.SetDefault("provider.type", "gemini")
	viper.SetDefault("provider.api_key", "")
	viper.SetDefault("provider.model", "gemini-1.5-flash")
	viper.SetDefault("provider.base_url", "https://generativelanguage.googleapis.com/")
	viper.SetDefault("provider.timeout", "30s")

	viper.SetDefault("cache.ttl", "5m")
	viper.SetDefault("cache.size", 1024)
	viper.SetDefault("cache.sweep_interval", "5m")

	viper.SetDefault("sync.enabled", true)
	viper.SetDefault("sync.interval", "30s")
	viper.SetDefault("sync.timeout", "25s")

	viper.SetDefault("seed.file_path", "")
	viper.SetDefault("seed.watch", true)

	viper.SetDefault("misc.log_level", "info")
	viper.SetDefault("misc.gin_mode", "release")
	viper.SetDefault("misc.timezone", "Local")
	viper.SetDefault("misc.reference_date", "September 10, 2025")
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 || c.Server.ShutDownTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}

	switch c.Provider.Type {
	case "gemini", "disabled":
	default:
		return fmt.Errorf("invalid provider type: %q (supported: gemini, disabled)", c.Provider.Type)
	}
	if c.Provider.Timeout <= 0 {
		return errors.New("provider timeout must be positive")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache ttl must be positive")
	}
	if c.Cache.Size <= 0 {
		return errors.New("cache size must be positive")
	}
	if c.Cache.SweepInterval <= 0 {
		return errors.New("cache sweep interval must be positive")
	}

	if c.Sync.Enabled && c.Sync.Interval <= 0 {
		return errors.New("sync interval must be positive")
	}
	if c.Sync.Enabled && c.Sync.Timeout <= 0 {
		return errors.New("sync timeout must be positive")
	}

	if c.Misc.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.Misc.LogLevel); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}
	switch c.Misc.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode: %q", c.Misc.GinMode)
	}
	if c.Misc.Timezone != "" {
		if _, err := time.LoadLocation(c.Misc.Timezone); err != nil {
			return fmt.Errorf("invalid timezone: %w", err)
		}
	}
	return nil
}

// Location returns the configured timezone, defaulting to the local one.
func (c *Config) Location() *time.Location {
	if c.Misc.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Misc.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvOrViperPort(envKey, viperKey string) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", envKey, err)
		}
		return port, nil
	}
	return viper.GetInt(viperKey), nil
}
