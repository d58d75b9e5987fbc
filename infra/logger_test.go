package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerClient_RequestIDAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerClient(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := ContextWithRequestID(context.Background(), "req-42")
	logger.ErrorWithContextf(ctx, errors.New("boom"), "[Mirror] Failed to mirror ticket %d", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "[Mirror] Failed to mirror ticket 3", record["msg"])
	assert.Equal(t, "req-42", record["request_id"])
	assert.Equal(t, "boom", record["error"])
}
