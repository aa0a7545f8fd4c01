package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/provider"
	"github.com/philipp01105/slogger/provider/providertest"
)

var fixedTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func newTestLogger(t *testing.T, settings provider.Settings) (*Logger, *providertest.Provider, *observer.ObservedLogs) {
	t.Helper()
	obs, logs := observer.New(zapcore.DebugLevel)
	p := providertest.New("app", settings)
	l := NewBuilder("app").
		WithProvider(providertest.Kind, p).
		WithSettings(provider.Merge(provider.Defaults(), settings)).
		WithClock(fixedClock).
		WithDiagnostics(zap.New(obs)).
		Build()
	return l, p, logs
}

func TestLogger_LevelGate(t *testing.T) {
	l, p, _ := newTestLogger(t, provider.Settings{"enabled": true, "level": WarnLevel})

	assert.False(t, l.IsDebugEnabled())
	assert.False(t, l.IsInfoEnabled())
	assert.True(t, l.IsWarnEnabled())
	assert.True(t, l.IsErrorEnabled())

	l.Debug("debug message")
	l.Info("info message")
	assert.Empty(t, p.Records(), "messages below the threshold must not reach the provider")

	l.Warn("warn message")
	l.Error("error message")

	records := p.Records()
	require.Len(t, records, 2)
	assert.Equal(t, core.Record{Time: fixedTime, Logger: "app", Level: WarnLevel, Payload: "warn message"}, records[0])
	assert.Equal(t, ErrorLevel, records[1].Level)
	assert.Equal(t, "error message", records[1].Payload)
}

func TestLogger_Disabled(t *testing.T) {
	l, p, _ := newTestLogger(t, provider.Settings{"enabled": false, "level": DebugLevel})

	assert.False(t, l.IsDebugEnabled())
	assert.False(t, l.IsErrorEnabled())

	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")

	assert.Empty(t, p.Records())
	assert.Equal(t, uint64(4), l.Stats().Suppressed)
	assert.Zero(t, l.Stats().TotalWritten())
}

func TestLogger_DefaultSettings(t *testing.T) {
	l, _, _ := newTestLogger(t, nil)

	assert.False(t, l.Enabled())
	assert.Equal(t, ErrorLevel, l.Level())
	assert.False(t, l.IsErrorEnabled())
}

func TestLogger_DebugThresholdOpensEverything(t *testing.T) {
	l, p, _ := newTestLogger(t, provider.Settings{"enabled": true, "level": "debug"})

	l.Debug(1)
	l.Info(2.5)
	l.Warn(true)
	l.Error(nil)

	records := p.Records()
	require.Len(t, records, 4)
	levels := []Level{records[0].Level, records[1].Level, records[2].Level, records[3].Level}
	assert.Equal(t, []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel}, levels)
}

func TestLogger_ErrorPayloadIsException(t *testing.T) {
	l, p, _ := newTestLogger(t, provider.Settings{"enabled": true, "level": InfoLevel})
	boom := core.Errorf("boom")

	l.Warn(boom)
	l.Debug(boom) // gate closed, still dropped

	records := p.Records()
	require.Len(t, records, 1)
	assert.Equal(t, ExceptionLevel, records[0].Level)
	assert.Same(t, boom, records[0].Payload)
	assert.Equal(t, uint64(1), l.Stats().Written[ExceptionLevel])
	assert.Zero(t, l.Stats().Written[WarnLevel])
}

func TestLogger_WriteFailureIsAbsorbed(t *testing.T) {
	l, p, logs := newTestLogger(t, provider.Settings{"enabled": true, "level": DebugLevel})
	p.FailWrites(errors.New("disk full"))

	assert.NotPanics(t, func() { l.Info("hello") })
	assert.Equal(t, uint64(1), l.Stats().Failed)

	entries := logs.FilterMessage("log write failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "app", entries[0].ContextMap()["logger"])
	assert.Equal(t, "disk full", entries[0].ContextMap()["error"])
}

func TestLogger_ProviderPanicIsAbsorbed(t *testing.T) {
	l, p, logs := newTestLogger(t, provider.Settings{"enabled": true, "level": DebugLevel})
	p.PanicOnWrite("kaboom")

	assert.NotPanics(t, func() { l.Error("hello") })
	assert.Equal(t, uint64(1), l.Stats().Failed)
	assert.Equal(t, 1, logs.FilterMessage("log write failed").Len())
}

func TestLogger_LevelName(t *testing.T) {
	l, _, _ := newTestLogger(t, nil)

	assert.Equal(t, "DEBUG", l.LevelName(DebugLevel))
	assert.Equal(t, "WARN", l.LevelName(WarnLevel))
	assert.Equal(t, "EXCEPTION", l.LevelName(ExceptionLevel))
	assert.Equal(t, "UNKNOWN", l.LevelName(Level(999)))
	assert.Equal(t, "UNKNOWN", l.LevelName(Level(-1)))
}

func TestLogger_Accessors(t *testing.T) {
	settings := provider.Settings{"enabled": true, "level": InfoLevel, "target": "mem"}
	l, _, _ := newTestLogger(t, settings)

	assert.Equal(t, "app", l.Name())
	assert.Equal(t, providertest.Kind, l.Provider())
	assert.Equal(t, provider.Checksum(providertest.Kind, provider.Merge(provider.Defaults(), settings)), l.Checksum())
	assert.NotEmpty(t, l.ID())

	got := l.Settings()
	assert.Equal(t, "mem", got["target"])
	got["target"] = "changed"
	assert.Equal(t, "mem", l.Settings()["target"], "Settings must return a copy")
}

func TestLogger_IDIsPerInstance(t *testing.T) {
	a, _, _ := newTestLogger(t, nil)
	b, _, _ := newTestLogger(t, nil)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.Checksum(), b.Checksum())
}

func TestLogger_NilProvider(t *testing.T) {
	l := NewBuilder("bare").
		WithSettings(provider.Settings{"enabled": true, "level": DebugLevel}).
		Build()

	assert.NotPanics(t, func() { l.Info("dropped") })
	assert.NoError(t, l.close())
}

func TestStats_Snapshot(t *testing.T) {
	s := NewStats()
	s.IncrementWritten(InfoLevel)
	s.IncrementWritten(InfoLevel)
	s.IncrementWritten(ExceptionLevel)
	s.IncrementWritten(Level(42))
	s.IncrementSuppressed()
	s.IncrementFailed()

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(2), snap.Written[InfoLevel])
	assert.Equal(t, uint64(1), snap.Written[ExceptionLevel])
	assert.Equal(t, uint64(3), snap.TotalWritten())
	assert.Equal(t, uint64(1), snap.Suppressed)
	assert.Equal(t, uint64(1), snap.Failed)
	assert.Zero(t, s.GetWritten(Level(42)))
}
