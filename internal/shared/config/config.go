package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

type Config struct {
	APIKey    string `koanf:"api_key"`
	ChannelID string `koanf:"channel_id"`

	FiltersFile   string `koanf:"filters_file"`
	ChannelsFile  string `koanf:"channels_file"`
	ProcessedFile string `koanf:"processed_file"`
	ChatFile      string `koanf:"chat_file"`
	OutputFile    string `koanf:"output_file"`
	PublishDir    string `koanf:"publish_dir"`
	MetricsFile   string `koanf:"metrics_file"`

	LongMessageThreshold int `koanf:"long_message_threshold"`
	LinkRewindSeconds    int `koanf:"link_rewind_seconds"`
	LookbackHours        int `koanf:"lookback_hours"`

	FeedTitle       string `koanf:"feed_title"`
	FeedLink        string `koanf:"feed_link"`
	FeedDescription string `koanf:"feed_description"`

	ChatDownloader string `koanf:"chat_downloader"`

	HTTPPort string `koanf:"http_port"`
	LogLevel string `koanf:"log_level"`
	AppEnv   AppEnv `koanf:"app_env"`
}

var defaults = map[string]any{
	"filters_file":           "filters.json",
	"channels_file":          "channels.json",
	"processed_file":         "processed_videos.json",
	"chat_file":              "latest_chat_filtered.json",
	"output_file":            "chat_feed.xml",
	"publish_dir":            "docs",
	"long_message_threshold": 20,
	"link_rewind_seconds":    30,
	"lookback_hours":         24,
	"feed_title":             "YouTube Chat Feed",
	"feed_link":              "https://www.youtube.com",
	"feed_description":       "Latest filtered chat from YouTube",
	"chat_downloader":        "chat_downloader",
	"http_port":              "8080",
	"log_level":              "info",
	"app_env":                "production",
}

// Load reads the first config file found in the working directory, then the
// environment (a local .env included), then fills in defaults.
// It does not require the API key; use ValidateFetch for commands that call the API.
func Load() (*Config, error) {
	// .env is a local convenience only, scheduled runs get real env vars
	_ = godotenv.Load()

	k := koanf.New(".")

	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.Code(errors.CodeConfig).With("config_file", configFile).Wrap(err)
		}
	}

	// API_KEY -> api_key, CHANNEL_ID -> channel_id
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	for key, value := range defaults {
		if !k.Exists(key) || k.String(key) == "" {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code(errors.CodeConfig).With("context", "unmarshaling config").Wrap(err)
	}

	if env, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = env
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	if cfg.LongMessageThreshold <= 0 {
		cfg.LongMessageThreshold = defaults["long_message_threshold"].(int)
	}
	if cfg.LinkRewindSeconds < 0 {
		cfg.LinkRewindSeconds = 0
	}
	if cfg.LookbackHours <= 0 {
		cfg.LookbackHours = defaults["lookback_hours"].(int)
	}

	return &cfg, nil
}

// ValidateFetch checks the fields the fetch command cannot run without.
func (c *Config) ValidateFetch() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return oops.Code(errors.CodeConfig).
			With("key", "api_key").
			Wrap(fmt.Errorf("%w: %w", errors.ErrConfig, errors.ErrMissingAPIKey))
	}
	return nil
}

// IsDevelopment reports whether the app runs on a developer machine, where
// logs carry source positions and default to debug level.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == AppEnvLocal || c.AppEnv == AppEnvDevelopment
}

// StagingPath is where the published copy of the output document goes.
func (c *Config) StagingPath() string {
	return filepath.Join(c.PublishDir, filepath.Base(c.OutputFile))
}
