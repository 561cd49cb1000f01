package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/storefront/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure builds the service logger on stdout from the logging section.
func Configure(cfg config.LoggingConf, service string) zerolog.Logger {
	return ConfigureTo(os.Stdout, cfg, service)
}

// ConfigureTo is Configure with an explicit destination.
func ConfigureTo(out io.Writer, cfg config.LoggingConf, service string) zerolog.Logger {
	// default: info
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(output).With().Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}
	logger := ctx.Logger()

	// package-level and context-less logging go through the same logger
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger
}
