package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTestLoggerAt(t *testing.T) {
	logger := NewTestLoggerAt(t, slog.LevelWarn)

	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, NewTestLogger(t).Enabled(t.Context(), slog.LevelDebug))
}
