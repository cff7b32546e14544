package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := L()
	Set(zap.New(core))
	t.Cleanup(func() { Set(prev) })
	return logs
}

func TestInfoFields(t *testing.T) {
	logs := observe(t)

	Info("profile extracted", map[string]any{
		"provider": "google",
		"fields":   13,
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "profile extracted", entry.Message)
	assert.Equal(t, map[string]any{
		"provider": "google",
		"fields":   int64(13),
	}, entry.ContextMap())
}

func TestLevelsAndErrors(t *testing.T) {
	logs := observe(t)

	Warn("callback error", nil)
	Error("exchange failed", map[string]any{"error": errors.New("bad code")})

	all := logs.All()
	require.Len(t, all, 2)
	assert.Equal(t, zapcore.WarnLevel, all[0].Level)
	assert.Empty(t, all[0].Context)
	assert.Equal(t, zapcore.ErrorLevel, all[1].Level)
	assert.Equal(t, "bad code", all[1].ContextMap()["error"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestInit_Output(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	Debug("provider request", map[string]any{"url": "https://api.example.com/me"})
	Sync()

	assert.Contains(t, buf.String(), `"msg":"logger initialized"`)
	assert.Contains(t, buf.String(), `"url":"https://api.example.com/me"`)
}

func TestDebugFilteredAtInfo(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	buf.Reset()

	Debug("provider request", nil)
	Sync()

	assert.Empty(t, buf.String())
}
