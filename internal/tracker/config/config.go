package config

import (
	"time"

	"golang-rival-tracker/pkg/config"
)

// Tracker holds tracker-specific configuration.
type Tracker struct {
	PollingInterval        time.Duration `mapstructure:"polling_interval"`
	MaxConcurrentTasks     int           `mapstructure:"max_concurrent_tasks"`
	TaskTimeout            time.Duration `mapstructure:"task_timeout"`
	RedisStreamReadTimeout time.Duration `mapstructure:"redis_stream_read_timeout"`
}

// Scraper holds configuration for the website scraper.
type Scraper struct {
	MaxChars            int    `mapstructure:"max_chars"`
	UserAgent           string `mapstructure:"user_agent"`
	TimeoutSeconds      int    `mapstructure:"timeout_seconds"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	NewsHeadlines       int    `mapstructure:"news_headlines"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AI holds configuration for AI providers.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// GooglePlaces holds the configuration for the reviews lookup.
type GooglePlaces struct {
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the tracker and API services.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Tracker      Tracker         `mapstructure:"tracker"`
	Scraper      Scraper         `mapstructure:"scraper"`
	Gemini       Gemini          `mapstructure:"gemini"`
	AI           AI              `mapstructure:"ai"`
	GooglePlaces GooglePlaces    `mapstructure:"google_places"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

// Load loads the tracker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Scraper.MaxChars == 0 {
		cfg.Scraper.MaxChars = 8000
	}
	if cfg.Tracker.PollingInterval == 0 {
		cfg.Tracker.PollingInterval = 30 * time.Second
	}
	return &cfg, nil
}
