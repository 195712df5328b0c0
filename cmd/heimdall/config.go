package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tinytelemetry/heimdall/internal/export"
	"github.com/tinytelemetry/heimdall/internal/model"
)

// appConfig holds the console and demo backend settings.
type appConfig struct {
	BaseURL         string        `mapstructure:"base-url"`
	RequestTimeout  time.Duration `mapstructure:"request-timeout"`
	StatusInterval  time.Duration `mapstructure:"status-interval"`
	MonitorInterval time.Duration `mapstructure:"monitor-interval"`
	DefaultPage     string        `mapstructure:"default-page"`
	UserID          string        `mapstructure:"user-id"`
	ExportDir       string        `mapstructure:"export-dir"`
	ExportFormat    string        `mapstructure:"export-format"`
	CachePath       string        `mapstructure:"cache-path"`
	CacheRetention  time.Duration `mapstructure:"cache-retention"`
	LogFile         string        `mapstructure:"log-file"`
	LogLevel        string        `mapstructure:"log-level"`
	DemoAddr        string        `mapstructure:"demo-addr"`
}

// loadConfig layers defaults, the YAML file, HEIMDALL_* env vars and
// flags, in increasing priority. A missing config file is not an error.
func loadConfig(configPath string, flags *pflag.FlagSet) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HEIMDALL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("base-url", model.DefaultBaseURL)
	v.SetDefault("request-timeout", 0)
	v.SetDefault("status-interval", model.DefaultStatusInterval)
	v.SetDefault("monitor-interval", model.DefaultMonitorInterval)
	v.SetDefault("default-page", string(model.PageDashboard))
	v.SetDefault("user-id", model.DefaultUserID)
	v.SetDefault("export-dir", ".")
	v.SetDefault("export-format", string(export.FormatJSON))
	v.SetDefault("cache-path", filepath.Join(home, ".local", "share", "heimdall", "snapshots.duckdb"))
	v.SetDefault("cache-retention", 30*24*time.Hour)
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "heimdall", "heimdall.log"))
	v.SetDefault("log-level", "info")
	v.SetDefault("demo-addr", model.DefaultDemoAddr)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "heimdall", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return cfg, fmt.Errorf("binding flags: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

func (c appConfig) validate() error {
	if _, err := model.ParsePageID(c.DefaultPage); err != nil {
		return fmt.Errorf("default-page: %w", err)
	}
	if _, err := export.ParseFormat(c.ExportFormat); err != nil {
		return fmt.Errorf("export-format: %w", err)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request-timeout: must not be negative")
	}
	return nil
}
