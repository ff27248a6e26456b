package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_ChildrenShareBuffer(t *testing.T) {
	logger := testutil.NewMockLogger()

	child := logger.Named("crunch").Named("kr").With(logging.String("run_id", "r1"))
	child.Warn("diagnostic", logging.String("code", "GHS_003"))

	warns := logger.MessagesAt("warn")
	require.Len(t, warns, 1)
	assert.Equal(t, "crunch.kr", warns[0].Logger)
	v, ok := warns[0].Field("run_id")
	require.True(t, ok)
	assert.Equal(t, "r1", v)
	v, _ = warns[0].Field("code")
	assert.Equal(t, "GHS_003", v)
}
