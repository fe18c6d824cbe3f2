package logger

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teranos/tser/errors"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func encode(t *testing.T, enc zapcore.Encoder, level zapcore.Level, name, msg string, fields ...zapcore.Field) string {
	t.Helper()
	ent := zapcore.Entry{
		Level:      level,
		Time:       time.Date(2026, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: name,
		Message:    msg,
	}
	buf, err := enc.EncodeEntry(ent, fields)
	require.NoError(t, err)
	defer buf.Free()
	return buf.String()
}

func TestMinimalEncoderFormat(t *testing.T) {
	out := encode(t, newMinimalEncoder(false), zapcore.InfoLevel, "driver", "wrote file",
		zap.String("path", "out/rust/schema.rs"))
	assert.Equal(t, "13:04:35  driver  wrote file  path=out/rust/schema.rs\n", out)
}

func TestMinimalEncoderLevels(t *testing.T) {
	tests := []struct {
		level    zapcore.Level
		expected string
	}{
		{zapcore.DebugLevel, "13:04:35  DEBUG  m\n"},
		{zapcore.InfoLevel, "13:04:35  m\n"},
		{zapcore.WarnLevel, "13:04:35  WARN  m\n"},
		{zapcore.ErrorLevel, "13:04:35  ERROR  m\n"},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, encode(t, newMinimalEncoder(false), tt.level, "", "m"))
		})
	}
}

func TestMinimalEncoderNeverDropsFields(t *testing.T) {
	out := encode(t, newMinimalEncoder(true), zapcore.WarnLevel, "driver", "compiled",
		zap.String("type", "UserType"),
		zap.Int("critical_count", 999),
		zap.Bool("deprecated", true),
		zap.Duration("took", 1500*time.Microsecond),
		zap.Strings("targets", []string{"rust", "swift"}),
	)
	plain := stripANSI(out)
	assert.NotEqual(t, out, plain, "color output carries escape codes")
	for _, want := range []string{"type=UserType", "critical_count=999", "deprecated=true", "took=1.5ms", `targets="[rust swift]"`} {
		assert.Contains(t, plain, want)
	}
}

func TestMinimalEncoderErrorField(t *testing.T) {
	out := encode(t, newMinimalEncoder(false), zapcore.ErrorLevel, "", "failed",
		zap.Error(errors.New("boom")))
	assert.Equal(t, "13:04:35  ERROR  failed  error=boom\n", out)
}

func TestMinimalEncoderQuotesValues(t *testing.T) {
	out := encode(t, newMinimalEncoder(false), zapcore.InfoLevel, "", "m",
		zap.String("file", "my schema.ts"), zap.String("empty", ""))
	assert.Equal(t, "13:04:35  m  file=\"my schema.ts\" empty=\"\"\n", out)
}

func TestNewConsoleWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Verbosity: VerbosityInfo, Output: zapcore.AddSync(&buf)})
	log.Named("driver").With("file", "a.ts", "jobs", 2).Infow("compiled", "targets", 4)
	log.Debug("hidden")

	out := buf.String()
	assert.Regexp(t, `^\d\d:\d\d:\d\d  driver  compiled  file=a\.ts jobs=2 targets=4\n$`, out)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Output: zapcore.AddSync(&buf)})
	log.Info("hidden at default verbosity")
	log.Warnw("careful", "file", "a.ts")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"careful"`)
	assert.Contains(t, out, `"file":"a.ts"`)
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		expected  zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Debug (-vv+)", LevelName(3))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Errorw("ignored", "k", 1) })
}
