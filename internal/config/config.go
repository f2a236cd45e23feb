package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the bot.
type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port        int    `env:"PORT" envDefault:"8080"`
		WebhookPath string `env:"WEBHOOK_PATH" envDefault:"/webhook"`
	}

	Database struct {
		URL string `env:"DATABASE_URL" envDefault:"chingum.db"`
	}

	Telegram struct {
		BotToken string `env:"BOT_TOKEN,required"`
		// Delay before the fake-ban message reveals itself.
		RevealDelay time.Duration `env:"REVEAL_DELAY" envDefault:"4s"`
	}
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// A missing .env is fine; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
