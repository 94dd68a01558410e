package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	URL     string
	Timeout time.Duration
}

type UIConfig struct {
	PageSize int
}

type LogConfig struct {
	File  string
	Level string
}

// AppConfig is the client configuration, loaded from an optional yaml file
// and PDFBRIEF_* environment variables.
type AppConfig struct {
	Server          ServerConfig
	UI              UIConfig
	Log             LogConfig
	CredentialsFile string
}

// Load reads configuration from ./config.yaml, ~/.config/pdfbrief/, or the
// environment. A missing config file is fine; defaults cover everything.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "pdfbrief"))
	}

	v.SetEnvPrefix("PDFBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.url", "http://localhost:8000")
	v.SetDefault("server.timeout", "30s")

	v.SetDefault("ui.pagesize", 20)

	v.SetDefault("log.level", "info")
	// Empty log file disables logging entirely; the TUI owns stdout.
	v.SetDefault("log.file", "")

	v.SetDefault("credentialsfile", "")
}
