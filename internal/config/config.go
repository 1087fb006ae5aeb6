// Package config loads hashflood defaults from the environment.
package config

import (
	"io"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

type Config struct {
	Workers    int    `env:"HASHFLOOD_WORKERS"`
	Iterations int    `env:"HASHFLOOD_ITERATIONS" envDefault:"5"`
	Seed       int64  `env:"HASHFLOOD_SEED"`
	LogLevel   string `env:"HASHFLOOD_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"HASHFLOOD_LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file from the working directory, then the
// process environment.
func Load() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parse environment")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1
	}
	return cfg, nil
}

// NewLogger builds a logger writing to out at level in format "text" or
// "json".
func NewLogger(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "bad log level")
	}

	logger := &logrus.Logger{
		Out:   out,
		Hooks: make(logrus.LevelHooks),
		Level: lvl,
	}

	switch strings.ToLower(format) {
	case "text":
		logger.Formatter = &prefixed.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		}
	case "json":
		logger.Formatter = new(logrus.JSONFormatter)
	default:
		return nil, errors.Errorf("bad log format %q", format)
	}

	return logger, nil
}
