package util

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a stdout logger at the requested level, falling back to
// info when the level string does not parse.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)
}
