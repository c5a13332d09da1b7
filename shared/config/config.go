package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube   YouTubeConfig   `yaml:"youtube"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Server    ServerConfig    `yaml:"server"`
	Prune     PruneConfig     `yaml:"prune"`
}

type YouTubeConfig struct {
	APIKey      string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	MaxComments int    `yaml:"max_comments"`
	PageSize    int    `yaml:"page_size"`
	PagePauseMS int    `yaml:"page_pause_ms"`
}

type ExtractorConfig struct {
	APIDedupGap    int `yaml:"api_dedup_gap"`
	ManualDedupGap int `yaml:"manual_dedup_gap"`
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	DataDir  string `yaml:"data_dir"`
	CacheDir string `yaml:"cache_dir"`
	TempDir  string `yaml:"temp_dir"`
}

type PruneConfig struct {
	Schedule    string `yaml:"schedule"`
	MaxAgeHours int    `yaml:"max_age_hours"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.YouTube.MaxComments == 0 {
		cfg.YouTube.MaxComments = 500
	}
	if cfg.YouTube.PageSize == 0 {
		cfg.YouTube.PageSize = 100
	}
	if cfg.YouTube.PagePauseMS == 0 {
		cfg.YouTube.PagePauseMS = 100
	}
	if cfg.Extractor.APIDedupGap == 0 {
		cfg.Extractor.APIDedupGap = 3
	}
	if cfg.Extractor.ManualDedupGap == 0 {
		cfg.Extractor.ManualDedupGap = 5
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.DataDir == "" {
		cfg.Server.DataDir = "data"
	}
	if cfg.Server.CacheDir == "" {
		cfg.Server.CacheDir = "thumbnail_cache"
	}
	if cfg.Server.TempDir == "" {
		cfg.Server.TempDir = "temp_thumbnails"
	}
	if cfg.Prune.Schedule == "" {
		cfg.Prune.Schedule = "0 * * * *" // Hourly
	}
	if cfg.Prune.MaxAgeHours == 0 {
		cfg.Prune.MaxAgeHours = 24
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required (set YOUTUBE_API_KEY or youtube.api_key)")
	}
	if c.YouTube.MaxComments < 0 {
		return fmt.Errorf("youtube.max_comments must not be negative")
	}
	if c.YouTube.PageSize < 1 || c.YouTube.PageSize > 100 {
		return fmt.Errorf("youtube.page_size must be between 1 and 100")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port")
	}
	return nil
}
