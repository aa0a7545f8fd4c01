package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/slogger/provider"
	"github.com/philipp01105/slogger/provider/consoleprovider"
	"github.com/philipp01105/slogger/provider/fileprovider"
	"github.com/philipp01105/slogger/provider/mongoprovider"
	"github.com/philipp01105/slogger/provider/zapprovider"
)

// DefaultProvider is the provider kind used when a Config names none
const DefaultProvider = fileprovider.Kind

// ErrNotConfigured is returned by Get for a name that was never configured
var ErrNotConfigured = errors.New("logger not configured")

// Config is the registration of a logger name
type Config struct {
	// Provider is the provider kind; empty means DefaultProvider
	Provider string
	Settings provider.Settings
}

type registration struct {
	kind     string
	settings provider.Settings
	checksum string
}

type kindEntry struct {
	factory  provider.Factory
	defaults provider.Settings
}

type cacheKey struct {
	name string
	kind string
}

// Registry stores logger configurations and caches the instances built
// from them. An instance is rebuilt when the configuration it was built
// from changes.
type Registry struct {
	kinds map[string]kindEntry
	now   func() time.Time
	diag  *zap.Logger

	mu        sync.RWMutex
	configs   map[string]registration
	instances map[cacheKey]*Logger

	keyMu    sync.Mutex
	keyLocks map[cacheKey]*sync.Mutex
}

// Option configures a Registry
type Option func(*Registry)

// WithProvider registers a provider kind with its factory and the settings
// it layers over the common defaults.
func WithProvider(kind string, factory provider.Factory, defaults provider.Settings) Option {
	return func(r *Registry) {
		r.kinds[strings.ToLower(kind)] = kindEntry{factory: factory, defaults: defaults.Clone()}
	}
}

// WithClock sets the time source for record timestamps
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDiagnostics routes the registry's own diagnostics to log
func WithDiagnostics(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.diag = log
		}
	}
}

// NewRegistry creates an empty registry that knows only the provider kinds
// passed via WithProvider.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		kinds:     make(map[string]kindEntry),
		now:       time.Now,
		diag:      zap.NewNop(),
		configs:   make(map[string]registration),
		instances: make(map[cacheKey]*Logger),
		keyLocks:  make(map[cacheKey]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry creates a registry with the built-in provider kinds
// registered. Additional options are applied after them.
func NewDefaultRegistry(opts ...Option) *Registry {
	builtin := []Option{
		WithProvider(fileprovider.Kind, fileprovider.New, fileprovider.Defaults()),
		WithProvider(consoleprovider.Kind, consoleprovider.New, consoleprovider.Defaults()),
		WithProvider(mongoprovider.Kind, mongoprovider.New, mongoprovider.Defaults()),
		WithProvider(zapprovider.Kind, zapprovider.New, zapprovider.Defaults()),
	}
	return NewRegistry(append(builtin, opts...)...)
}

// Configure registers cfg under name, replacing any previous registration.
// Settings are layered over the common defaults and the provider kind's
// defaults. Cached instances are left alone until the next Get.
func (r *Registry) Configure(name string, cfg Config) {
	kind := strings.ToLower(cfg.Provider)
	if kind == "" {
		kind = DefaultProvider
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var kindDefaults provider.Settings
	if entry, ok := r.kinds[kind]; ok {
		kindDefaults = entry.defaults
	}
	settings := provider.Merge(provider.Defaults(), kindDefaults, cfg.Settings)
	r.configs[name] = registration{
		kind:     kind,
		settings: settings,
		checksum: provider.Checksum(kind, settings),
	}
}

// Configured reports whether name has a registration
func (r *Registry) Configured(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.configs[name]
	return ok
}

// Names returns the registered logger names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Get returns the logger instance for name. A cached instance is returned
// while its checksum matches the current registration; otherwise the stale
// instance is closed and a new one is built.
func (r *Registry) Get(name string) (*Logger, error) {
	for {
		reg, err := r.registration(name)
		if err != nil {
			return nil, err
		}

		key := cacheKey{name: name, kind: reg.kind}
		if l := r.cached(key); l != nil && l.checksum == reg.checksum {
			return l, nil
		}

		l, retry, err := r.rebuild(name, key)
		if retry {
			continue
		}
		return l, err
	}
}

func (r *Registry) registration(name string) (registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.configs[name]
	if !ok {
		return registration{}, fmt.Errorf("%w: %q", ErrNotConfigured, name)
	}
	return reg, nil
}

// rebuild runs check-construct-store under the key lock. retry is true when
// the registration moved to another provider kind while waiting.
func (r *Registry) rebuild(name string, key cacheKey) (l *Logger, retry bool, err error) {
	lock := r.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	// Another Get or Configure may have won while waiting
	reg, err := r.registration(name)
	if err != nil {
		return nil, false, err
	}
	if reg.kind != key.kind {
		return nil, true, nil
	}

	stale := r.cached(key)
	if stale != nil && stale.checksum == reg.checksum {
		return stale, false, nil
	}
	if stale != nil {
		r.evict(key, stale)
	}
	r.evictOtherKinds(key)

	l, err = r.build(name, reg)
	if err != nil {
		r.diag.Warn("logger construction failed",
			zap.String("logger", name),
			zap.String("provider", reg.kind),
			zap.Error(err),
		)
		return nil, false, err
	}

	r.mu.Lock()
	r.instances[key] = l
	r.mu.Unlock()

	r.diag.Debug("logger built",
		zap.String("logger", name),
		zap.String("provider", reg.kind),
		zap.String("id", l.id),
		zap.String("checksum", l.checksum),
	)
	return l, false, nil
}

func (r *Registry) cached(key cacheKey) *Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.instances[key]
}

func (r *Registry) keyLock(key cacheKey) *sync.Mutex {
	r.keyMu.Lock()
	defer r.keyMu.Unlock()
	lock, ok := r.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.keyLocks[key] = lock
	}
	return lock
}

// evict removes a superseded instance from the cache and closes it. An
// instance another caller already removed is left to that caller.
func (r *Registry) evict(key cacheKey, stale *Logger) {
	r.mu.Lock()
	if r.instances[key] != stale {
		r.mu.Unlock()
		return
	}
	delete(r.instances, key)
	r.mu.Unlock()

	if err := stale.close(); err != nil {
		r.diag.Warn("closing stale logger failed",
			zap.String("logger", key.name),
			zap.String("provider", key.kind),
			zap.String("id", stale.id),
			zap.Error(err),
		)
		return
	}
	r.diag.Debug("stale logger closed",
		zap.String("logger", key.name),
		zap.String("provider", key.kind),
		zap.String("id", stale.id),
	)
}

// evictOtherKinds closes instances cached for key's name under a provider
// kind the name is no longer registered with
func (r *Registry) evictOtherKinds(key cacheKey) {
	r.mu.RLock()
	var orphans []cacheKey
	for k := range r.instances {
		if k.name == key.name && k.kind != key.kind {
			orphans = append(orphans, k)
		}
	}
	r.mu.RUnlock()

	for _, k := range orphans {
		if l := r.cached(k); l != nil {
			r.evict(k, l)
		}
	}
}

func (r *Registry) build(name string, reg registration) (*Logger, error) {
	entry, ok := r.kinds[reg.kind]
	if !ok {
		return nil, provider.NewInitError(reg.kind, name, fmt.Errorf("unknown provider kind %q", reg.kind))
	}

	p, err := entry.factory(name, reg.settings)
	if err != nil {
		var initErr *provider.InitError
		if errors.As(err, &initErr) {
			return nil, err
		}
		return nil, provider.NewInitError(reg.kind, name, err)
	}

	return NewBuilder(name).
		WithProvider(reg.kind, p).
		WithSettings(reg.settings).
		WithChecksum(reg.checksum).
		WithClock(r.now).
		WithDiagnostics(r.diag).
		Build(), nil
}

// Close closes every cached instance and empties the cache. Registrations
// are kept, so a later Get builds fresh instances.
func (r *Registry) Close() error {
	r.mu.Lock()
	instances := r.instances
	r.instances = make(map[cacheKey]*Logger)
	r.mu.Unlock()

	var err error
	for key, l := range instances {
		if cerr := l.close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close logger %q (%s): %w", key.name, key.kind, cerr))
		}
	}
	if err != nil {
		r.diag.Warn("registry close failed", zap.Error(err))
	}
	return err
}

// Reset closes every cached instance and forgets every registration
func (r *Registry) Reset() error {
	err := r.Close()
	r.mu.Lock()
	r.configs = make(map[string]registration)
	r.mu.Unlock()
	return err
}
