package config

import (
	"fmt"
	"time"

	"drishti-notifier/internal/scraper"
)

type Config struct {
	TargetURL      string              `yaml:"target_url"`
	SiteBaseURL    string              `yaml:"site_base_url"`
	HistoryFile    string              `yaml:"history_file"`
	MaxHistorySize int                 `yaml:"max_history_size"`
	TopItems       int                 `yaml:"top_items"`
	RunTimeoutS    int                 `yaml:"run_timeout_s"`
	HTTP           HttpConfig          `yaml:"http"`
	Rod            RodConfig           `yaml:"rod"`
	Discord        DiscordConfig       `yaml:"discord"`
	NewsOfTheDay   NewsOfTheDayConfig  `yaml:"news_of_the_day"`
	Selectors      scraper.Selectors   `yaml:"selectors"`
	Observability  ObservabilityConfig `yaml:"observability"`
}

type HttpConfig struct {
	UserAgent      string `yaml:"user_agent"`
	FetchTimeoutS  int    `yaml:"fetch_timeout_s"`
	NotifyTimeoutS int    `yaml:"notify_timeout_s"`
}

type RodConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ChromePath   string `yaml:"chrome_path"`
	PageTimeoutS int    `yaml:"page_timeout_s"`
}

// DiscordConfig описывает оформление сообщений. WebhookURL приходит только из окружения.
type DiscordConfig struct {
	WebhookURL     string `yaml:"-"`
	Username       string `yaml:"username"`
	AvatarURL      string `yaml:"avatar_url"`
	FooterText     string `yaml:"footer_text"`
	NewsColor      int    `yaml:"news_color"`
	EditorialColor int    `yaml:"editorial_color"`
}

type NewsOfTheDayConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ObservabilityConfig struct {
	LogPath    string `yaml:"log_path"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ConfigError is returned for configuration the run cannot start without.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Validation
func (c *Config) Validate() error {
	if c.TargetURL == "" {
		return &ConfigError{Field: "target_url", Reason: "is required"}
	}
	if c.SiteBaseURL == "" {
		return &ConfigError{Field: "site_base_url", Reason: "is required"}
	}
	if c.HistoryFile == "" {
		return &ConfigError{Field: "history_file", Reason: "is required"}
	}
	if c.MaxHistorySize <= 0 {
		return &ConfigError{Field: "max_history_size", Reason: "must be > 0"}
	}
	if c.TopItems <= 0 {
		return &ConfigError{Field: "top_items", Reason: "must be > 0"}
	}
	if c.RunTimeoutS <= 0 {
		return &ConfigError{Field: "run_timeout_s", Reason: "must be > 0"}
	}
	if c.HTTP.UserAgent == "" {
		return &ConfigError{Field: "http.user_agent", Reason: "is required"}
	}
	if c.HTTP.FetchTimeoutS <= 0 {
		return &ConfigError{Field: "http.fetch_timeout_s", Reason: "must be > 0"}
	}
	if c.HTTP.NotifyTimeoutS <= 0 {
		return &ConfigError{Field: "http.notify_timeout_s", Reason: "must be > 0"}
	}
	if c.Rod.Enabled && c.Rod.PageTimeoutS <= 0 {
		return &ConfigError{Field: "rod.page_timeout_s", Reason: "must be > 0 when rod.enabled is true"}
	}
	if c.Discord.Username == "" {
		return &ConfigError{Field: "discord.username", Reason: "is required"}
	}
	if c.Discord.NewsColor == c.Discord.EditorialColor {
		return &ConfigError{Field: "discord.editorial_color", Reason: "must differ from discord.news_color"}
	}
	if err := validateSelectors(&c.Selectors); err != nil {
		return err
	}
	switch c.Observability.LogFormat {
	case "", "console", "json":
	default:
		return &ConfigError{Field: "observability.log_format", Reason: "must be 'console' or 'json'"}
	}
	return nil
}

// RequireWebhook проверяет, что адрес вебхука задан. Без него запуск бессмыслен.
func (c *Config) RequireWebhook() error {
	if c.Discord.WebhookURL == "" {
		return &ConfigError{Field: WebhookEnv, Reason: "is not set"}
	}
	return nil
}

// Getters
func (c *Config) GetFetchTimeout() time.Duration {
	return time.Duration(c.HTTP.FetchTimeoutS) * time.Second
}

func (c *Config) GetNotifyTimeout() time.Duration {
	return time.Duration(c.HTTP.NotifyTimeoutS) * time.Second
}

func (c *Config) GetRunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutS) * time.Second
}

func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}
