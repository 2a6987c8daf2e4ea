package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken       string        `envconfig:"BOT_TOKEN" required:"true"`
	MVGAuthKey     string        `envconfig:"MVG_AUTH_KEY" required:"true"`
	MVGBaseURL     string        `envconfig:"MVG_BASE_URL" default:"https://www.mvg.de"`
	DBPath         string        `envconfig:"DB_PATH" default:"./data/mvvbot.db"`
	TZ             string        `envconfig:"BOT_TZ" default:"Europe/Berlin"` // wall-clock zone for departure tables
	SessionTimeout time.Duration `envconfig:"SESSION_TIMEOUT" default:"10m"`  // idle time before a chat session is closed
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`       // debug|info|warn|error
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8080"`      // healthz
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
