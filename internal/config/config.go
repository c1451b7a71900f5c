package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr            string        `mapstructure:"addr"`
	TLSCert         string        `mapstructure:"tls_cert"`
	TLSKey          string        `mapstructure:"tls_key"`
	TokenKey        string        `mapstructure:"token_key"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	StaticDir       string        `mapstructure:"static_dir"`
}

// TLS reports whether the server should listen with TLS.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// AuthEnabled reports whether API routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.TokenKey != ""
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper applies defaults and environment overrides to v.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("tls_cert", "")
	v.SetDefault("tls_key", "")
	v.SetDefault("token_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("rate_limit", 5.0)
	v.SetDefault("rate_burst", 10)
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("static_dir", "")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return errors.New("ADDR must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT must be positive")
	}
	if cfg.RateBurst < 1 {
		return errors.New("RATE_BURST must be at least 1")
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
