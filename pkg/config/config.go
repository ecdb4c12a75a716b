package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Taste    TasteConfig    `mapstructure:"taste"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Prefs    PrefsConfig    `mapstructure:"prefs"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type TasteConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

type PipelineConfig struct {
	FetchLimit int `mapstructure:"fetch_limit"`
}

type PrefsConfig struct {
	Path string `mapstructure:"path"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.address", ":8080")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 500)
	v.SetDefault("openai.temperature", 0.2)
	v.SetDefault("taste.base_url", "https://hackathon.api.qloo.com")
	v.SetDefault("taste.timeout", 10*time.Second)
	v.SetDefault("taste.max_retries", 2)
	v.SetDefault("pipeline.fetch_limit", 5)
	v.SetDefault("prefs.path", "prefs.json")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file when present; defaults plus environment
	// variables are enough to run without one
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for environment variable overrides for secrets
	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}
	if apiKey := v.GetString("TASTE_API_KEY"); apiKey != "" {
		config.Taste.APIKey = apiKey
	}

	return &config, nil
}
