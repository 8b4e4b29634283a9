package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func newLogger(cfg LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if cfg.Format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.TimeOnly,
			NoColor:    cfg.NoColor,
		})
	} else {
		zl = zerolog.New(out)
	}
	return zl.Level(level).With().Timestamp().Str("service", "railz").Logger()
}
