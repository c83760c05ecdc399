package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Redis    *Redis
	OneC     *OneC
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

// Redis is optional, an empty URL disables the rate limiter.
type Redis struct {
	URL string `env:"REDIS_URL"`
}

// OneC configures the 1C web service client and the auto-sync scheduler.
// AutoSync has no envDefault so the flag value survives env.Parse.
type OneC struct {
	WebServiceTimeout time.Duration `env:"ONEC_WS_TIMEOUT" envDefault:"30s"`
	RetryAttempts     uint64        `env:"ONEC_WS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay        time.Duration `env:"ONEC_WS_RETRY_DELAY" envDefault:"5s"`
	AutoSync          bool          `env:"ONEC_AUTO_SYNC"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var redis Redis
	var onec OneC
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&redis.URL, "r", "", "Redis URL for rate limiting")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.BoolVar(&onec.AutoSync, "s", false, "Enable 1C auto sync")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&redis)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis config: %w", err)
	}
	err = env.Parse(&onec)
	if err != nil {
		return nil, fmt.Errorf("error parsing 1c config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Redis:    &redis,
		OneC:     &onec,
		App:      &app,
	}

	return &config, nil
}
