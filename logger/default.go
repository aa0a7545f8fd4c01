package logger

import (
	"sync"
)

var (
	defaultRegistry *Registry
	defaultMu       sync.RWMutex
)

func init() {
	// Initialize default registry with the built-in provider kinds
	defaultRegistry = NewDefaultRegistry()
}

// Default returns the process default registry
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// SetDefault replaces the process default registry. The previous registry
// is returned so callers can close it. A nil r is ignored and nil is
// returned.
func SetDefault(r *Registry) *Registry {
	if r == nil {
		return nil
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultRegistry
	defaultRegistry = r
	return prev
}

// Package-level convenience functions using the default registry

// Configure registers cfg under name in the default registry
func Configure(name string, cfg Config) {
	Default().Configure(name, cfg)
}

// Get returns the logger for name from the default registry
func Get(name string) (*Logger, error) {
	return Default().Get(name)
}

// MustGet is like Get but panics when the logger cannot be built
func MustGet(name string) *Logger {
	l, err := Get(name)
	if err != nil {
		panic(err)
	}
	return l
}
