package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whizdome/promorama-backend/internal/infrastructure/config"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l := New(config.LogConfig{Level: "debug", Format: "json", Output: "stdout"})
	require.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewForEnvironment(t *testing.T) {
	prod := NewForEnvironment("production")
	require.NotNil(t, prod)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))

	dev := NewForEnvironment("development")
	require.NotNil(t, dev)
	assert.True(t, dev.Core().Enabled(zapcore.InfoLevel))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNewWriter_FallsBackToStdout(t *testing.T) {
	// An unopenable path must not panic; the logger falls back to stdout
	w := newWriter("/nonexistent-dir/never/app.log")
	assert.NotNil(t, w)
}
