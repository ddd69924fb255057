package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobboard/internal/logger"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Component(logger.NewWithWriter(logger.Config{Level: "warn"}, &buf), "tracker")

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len(), "info is below warn")

	l.Warn().Str("applicationId", "a1").Msg("publish failed")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "tracker", line["component"])
	assert.Equal(t, "jobboard", line["service"])
	assert.Equal(t, "a1", line["applicationId"])
}

func TestNewWithWriter_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Level: "chatty"}, &buf)
	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}
