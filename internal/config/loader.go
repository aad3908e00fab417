package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// WebhookEnv - единственное значение, которое задаётся при запуске.
const WebhookEnv = "DISCORD_WEBHOOK"

//go:embed defaults.yaml
var defaultsYAML []byte

// Load собирает конфигурацию из встроенного defaults.yaml и переменной окружения DISCORD_WEBHOOK.
// Наличие вебхука здесь не проверяется: это делает оркестратор до первого сетевого запроса.
func Load() (*Config, error) {
	cfg, err := Parse(defaultsYAML)
	if err != nil {
		return nil, err
	}

	cfg.Discord.WebhookURL = strings.TrimSpace(os.Getenv(WebhookEnv))

	return cfg, nil
}

// Parse декодирует и валидирует YAML конфигурацию.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &cfg, nil
}

// LoadEnvFiles loads .env.local and then .env from the working directory.
// Variables already present in the environment are never overridden.
// Missing files are not an error.
func LoadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}
