package logger

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

func encode(t *testing.T, ent zapcore.Entry, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := newMinimalEncoder().EncodeEntry(ent, fields)
	require.NoError(t, err)
	defer buf.Free()
	return stripANSI(buf.String())
}

// TestMinimalEncoderNeverDiscardsFields ensures the minimal encoder never
// silently drops a log field.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "trim",
		Message:    "Testing field preservation",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String("language", "en"), "language=en"},
		{zap.Int64("root_id", 7345184), "root_id=7345184"},
		{zap.Int("removed", 12), "removed=12"},
		{zap.Bool("fallback", true), "fallback=true"},
		{zap.Float64("threshold", 2.5), "threshold=2.5"},
		{zap.Strings("categories", []string{"a", "b"}), "categories=[a b]"},
		{zap.Error(errors.New("boom")), "error=boom"},
		{zap.Error(nil), ""},
		{zap.String("run_id", "r-42"), "r-42"},
		{zap.Int64("duration_ms", 15), "15ms"},
	}

	var fields []zapcore.Field
	for _, tf := range testFields {
		fields = append(fields, tf.field)
	}

	output := encode(t, entry, fields...)
	for _, tf := range testFields {
		if tf.mustFind == "" {
			continue
		}
		assert.Contains(t, output, tf.mustFind)
	}
}

func TestMinimalEncoderGraphStats(t *testing.T) {
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2024, 1, 1, 13, 4, 35, 0, time.UTC),
		LoggerName: "trim.percentile",
		Message:    "[percentile] Pruned",
	}

	output := encode(t, entry, zap.Int("nodes", 19), zap.Int("edges", 23))

	assert.Contains(t, output, "13:04:35")
	assert.Contains(t, output, "t.percentile")
	assert.Contains(t, output, "[percentile] Pruned")
	assert.Contains(t, output, "(19 nodes, 23 edges)")
}

func TestMinimalEncoderLevels(t *testing.T) {
	base := zapcore.Entry{Time: time.Now(), Message: "msg"}

	base.Level = zapcore.InfoLevel
	assert.NotContains(t, encode(t, base), "INFO")

	base.Level = zapcore.WarnLevel
	assert.Contains(t, encode(t, base), "WARN")

	base.Level = zapcore.ErrorLevel
	assert.Contains(t, encode(t, base), "ERROR")
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)

	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme, "unknown themes are ignored")
	assert.False(t, IsTheme("solarized"))
	assert.True(t, IsTheme("everforest"))
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "assets", abbreviateName("assets"))
	assert.Equal(t, "t.reachability", abbreviateName("trim.reachability"))
}
