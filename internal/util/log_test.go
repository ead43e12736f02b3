package util

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, NewLogger("WARN").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger("not-a-level").GetLevel())
}
