package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efaktura/internal/logger"
)

func TestSetup_FileOutputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "efaktura.log")

	l, err := logger.Setup(logger.LogConfig{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	cl := logger.WithComponent(l, "scheduler")
	cl.Debug().Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"scheduler"`)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestSetup_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "efaktura.log")

	l, err := logger.Setup(logger.LogConfig{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestSetup_Errors(t *testing.T) {
	_, err := logger.Setup(logger.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = logger.Setup(logger.LogConfig{Output: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}

func TestSetup_StackMeansStderr(t *testing.T) {
	_, err := logger.Setup(logger.LogConfig{Output: "stack"})
	assert.NoError(t, err)
}
