// Package config reads NS2STAT_* settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const Prefix = "NS2STAT_"

type Config struct {
	DataDir   string `env:"DATA" envDefault:"test_data"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Players table and ranking thresholds.
	MinCount          uint32 `env:"MIN_COUNT" envDefault:"50"`
	MinEncounters     uint32 `env:"MIN_ENCOUNTERS" envDefault:"50"`
	MinPairEncounters uint32 `env:"MIN_PAIR_ENCOUNTERS" envDefault:"20"`

	// Balancer worker pool; 0 means GOMAXPROCS.
	Workers int `env:"WORKERS" envDefault:"0"`

	Server Server `envPrefix:"HTTP_"`
}

type Server struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads .env from the working directory when present, then parses the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse(env.Options{})
}

// Parse fills a Config using opts; the NS2STAT_ prefix is always applied.
func Parse(opts env.Options) (*Config, error) {
	opts.Prefix = Prefix
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%sLOG_LEVEL: %w", Prefix, err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%sLOG_FORMAT: want text or json, got %q", Prefix, cfg.LogFormat)
	}
	return cfg, nil
}

// ConfigureLogging applies the level and format to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
