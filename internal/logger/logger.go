package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New configura el logger raíz. En desarrollo escribe en consola legible,
// en cualquier otro modo emite JSON.
func New(mode string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if mode == "debug" || mode == "" {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(out).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
