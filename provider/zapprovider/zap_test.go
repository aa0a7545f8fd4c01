package zapprovider

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/provider"
)

var fixedTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func TestProvider_Write(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	p := NewWithCore("app", obs, nil, nil)

	require.NoError(t, p.Write(&core.Record{Time: fixedTime, Logger: "app", Level: core.WarnLevel, Payload: "hello"}))
	require.NoError(t, p.Write(&core.Record{Time: fixedTime, Logger: "app", Level: core.ExceptionLevel, Payload: errors.New("boom")}))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "app", entries[0].LoggerName)
	assert.Equal(t, "WARN", entries[0].ContextMap()[LevelNameKey])

	assert.Equal(t, "boom", entries[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "EXCEPTION", entries[1].ContextMap()[LevelNameKey])

	assert.Equal(t, fixedTime, logs.All()[0].Time)
}

func TestProvider_CoreLevel(t *testing.T) {
	obs, logs := observer.New(zapcore.ErrorLevel)
	p := NewWithCore("app", obs, nil, nil)

	require.NoError(t, p.Write(&core.Record{Time: fixedTime, Level: core.InfoLevel, Payload: "filtered"}))
	assert.Zero(t, logs.Len())
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, zapLevel(core.DebugLevel))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(core.InfoLevel))
	assert.Equal(t, zapcore.WarnLevel, zapLevel(core.WarnLevel))
	assert.Equal(t, zapcore.ErrorLevel, zapLevel(core.ErrorLevel))
	assert.Equal(t, zapcore.ErrorLevel, zapLevel(core.ExceptionLevel))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(core.Level(99)))
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zap.log")
	s := provider.Merge(provider.Defaults(), Defaults(), provider.Settings{
		provider.KeyTarget: path,
		KeyEncoding:        "json",
	})

	p, err := New("api", s)
	require.NoError(t, err)
	require.NoError(t, p.Write(&core.Record{Time: fixedTime, Logger: "api", Level: core.InfoLevel, Payload: "ready"}))
	require.NoError(t, p.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, `"timestamp":"2026-03-01 09:30:00"`)
	assert.Contains(t, out, `"logger":"api"`)
	assert.Contains(t, out, `"msg":"ready"`)
	assert.Contains(t, out, `"level_name":"INFO"`)
}

func TestNew_BadTarget(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := New("api", provider.Settings{provider.KeyTarget: filepath.Join(blocker, "zap.log")})
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrInit)
}
