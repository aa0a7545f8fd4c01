package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/slogger/provider"
)

// useRegistry swaps the default registry for the duration of a test
func useRegistry(t *testing.T, r *Registry) {
	t.Helper()
	prev := SetDefault(r)
	t.Cleanup(func() {
		_ = SetDefault(prev).Reset()
	})
}

func TestDefault_HasBuiltinKinds(t *testing.T) {
	r := Default()
	require.NotNil(t, r)
	for _, kind := range []string{"file", "console", "mongodb", "zap"} {
		_, ok := r.kinds[kind]
		assert.True(t, ok, "default registry misses kind %q", kind)
	}
}

func TestSetDefault_ReturnsPrevious(t *testing.T) {
	original := Default()
	replacement := NewRegistry()

	prev := SetDefault(replacement)
	assert.Same(t, original, prev)
	assert.Same(t, replacement, Default())

	assert.Same(t, replacement, SetDefault(original))
	assert.Same(t, original, Default())
}

func TestPackageLevel_ConfigureAndGet(t *testing.T) {
	useRegistry(t, NewDefaultRegistry(WithClock(fixedClock)))
	target := filepath.Join(t.TempDir(), "pkg.log")

	Configure("pkg", Config{Settings: provider.Settings{
		"enabled": true,
		"level":   "warning",
		"target":  target,
	}})

	l, err := Get("pkg")
	require.NoError(t, err)
	assert.Same(t, l, MustGet("pkg"))

	l.Info("skipped")
	l.Warn("kept")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "[2026-03-01 09:30:00] pkg - WARN - kept\n", string(data))
}

func TestMustGet_PanicsWhenNotConfigured(t *testing.T) {
	useRegistry(t, NewRegistry())

	assert.PanicsWithError(t, `logger not configured: "nope"`, func() {
		MustGet("nope")
	})
}

func TestSetDefault_IgnoresNil(t *testing.T) {
	current := Default()

	assert.Nil(t, SetDefault(nil))
	assert.Same(t, current, Default())
	assert.NotPanics(t, func() {
		_, _ = Get("never-configured")
	})
}
