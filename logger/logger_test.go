package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		level      zapcore.Level
	}{
		{name: "JSON output mode", jsonOutput: true, level: zapcore.InfoLevel},
		{name: "Console output mode", jsonOutput: false, level: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.level))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.True(t, Logger.Desugar().Core().Enabled(tt.level))
			assert.False(t, Logger.Desugar().Core().Enabled(tt.level-1))

			Cleanup()
		})
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	assert.NotPanics(t, func() {
		Infow("message", FieldNodes, 1)
		Warnw("message")
		Errorw("message")
		Debugw("message")
		Cleanup()
	})
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
	assert.Equal(t, "Info (-v)", LevelName(1))
}

func TestFieldsFromContext(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		assert.Empty(t, FieldsFromContext(context.Background()))
	})

	t.Run("run and component", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "run-1")
		ctx = WithComponent(ctx, "trim")

		fields := FieldsFromContext(ctx)
		assert.Equal(t, []interface{}{FieldRunID, "run-1", FieldComponent, "trim"}, fields)
	})

	t.Run("logger from bare context is global", func(t *testing.T) {
		assert.Same(t, Logger, LoggerFromContext(context.Background()))
	})
}
