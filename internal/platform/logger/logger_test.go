package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer
	log := setup(&buf, "warn")

	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))

	log.Warn("something happened", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "something happened", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestSetupInvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := setup(&buf, "loud")

	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.Contains(t, buf.String(), "invalid log level configured")
}
