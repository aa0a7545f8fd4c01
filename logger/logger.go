package logger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/provider"
)

// Logger is a configured, provider-bound logger instance. It is immutable
// after construction and safe for concurrent use. Instances obtained from
// a Registry are owned by it; callers must not Close them.
type Logger struct {
	id       string
	name     string
	kind     string
	settings provider.Settings
	enabled  bool
	level    core.Level
	checksum string
	provider provider.Provider
	now      func() time.Time
	diag     *zap.Logger
	stats    *Stats
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name     string
	kind     string
	settings provider.Settings
	checksum string
	provider provider.Provider
	now      func() time.Time
	diag     *zap.Logger
}

// NewBuilder creates a new logger builder for name
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		settings: provider.Defaults(),
		now:      time.Now,
		diag:     zap.NewNop(),
	}
}

// WithProvider binds the provider and its kind
func (b *Builder) WithProvider(kind string, p provider.Provider) *Builder {
	b.kind = kind
	b.provider = p
	return b
}

// WithSettings sets the resolved settings the logger reads enabled and level from
func (b *Builder) WithSettings(s provider.Settings) *Builder {
	b.settings = s.Clone()
	return b
}

// WithChecksum sets the checksum of the configuration the logger is built from
func (b *Builder) WithChecksum(checksum string) *Builder {
	b.checksum = checksum
	return b
}

// WithClock sets the time source for record timestamps
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// WithDiagnostics sets the logger that receives swallowed write failures
func (b *Builder) WithDiagnostics(diag *zap.Logger) *Builder {
	if diag != nil {
		b.diag = diag
	}
	return b
}

// Build creates the Logger instance. The checksum defaults to the one of
// the builder's kind and settings.
func (b *Builder) Build() *Logger {
	checksum := b.checksum
	if checksum == "" {
		checksum = provider.Checksum(b.kind, b.settings)
	}
	return &Logger{
		id:       uuid.NewString(),
		name:     b.name,
		kind:     b.kind,
		settings: b.settings,
		enabled:  b.settings.Enabled(),
		level:    b.settings.Level(),
		checksum: checksum,
		provider: b.provider,
		now:      b.now,
		diag:     b.diag,
		stats:    NewStats(),
	}
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// Provider returns the provider kind the logger is bound to
func (l *Logger) Provider() string { return l.kind }

// Checksum returns the checksum of the configuration the logger was built from
func (l *Logger) Checksum() string { return l.checksum }

// ID uniquely identifies this instance; a rebuild yields a new ID
func (l *Logger) ID() string { return l.id }

// Enabled reports the configured enabled flag
func (l *Logger) Enabled() bool { return l.enabled }

// Level returns the configured threshold
func (l *Logger) Level() core.Level { return l.level }

// Settings returns a copy of the resolved settings
func (l *Logger) Settings() provider.Settings { return l.settings.Clone() }

// Stats returns a snapshot of the logger's counters
func (l *Logger) Stats() Snapshot { return l.stats.GetSnapshot() }

// LevelName returns the name of level, or "UNKNOWN" outside the enumeration
func (l *Logger) LevelName(level core.Level) string {
	return level.String()
}

func (l *Logger) isEnabled(level core.Level) bool {
	return l.enabled && l.level <= level
}

// IsDebugEnabled reports whether Debug calls reach the provider
func (l *Logger) IsDebugEnabled() bool { return l.isEnabled(core.DebugLevel) }

// IsInfoEnabled reports whether Info calls reach the provider
func (l *Logger) IsInfoEnabled() bool { return l.isEnabled(core.InfoLevel) }

// IsWarnEnabled reports whether Warn calls reach the provider
func (l *Logger) IsWarnEnabled() bool { return l.isEnabled(core.WarnLevel) }

// IsErrorEnabled reports whether Error calls reach the provider
func (l *Logger) IsErrorEnabled() bool { return l.isEnabled(core.ErrorLevel) }

// Debug logs a payload at DEBUG
func (l *Logger) Debug(payload any) {
	if !l.IsDebugEnabled() {
		l.stats.IncrementSuppressed()
		return
	}
	l.write(core.DebugLevel, payload)
}

// Info logs a payload at INFO
func (l *Logger) Info(payload any) {
	if !l.IsInfoEnabled() {
		l.stats.IncrementSuppressed()
		return
	}
	l.write(core.InfoLevel, payload)
}

// Warn logs a payload at WARN
func (l *Logger) Warn(payload any) {
	if !l.IsWarnEnabled() {
		l.stats.IncrementSuppressed()
		return
	}
	l.write(core.WarnLevel, payload)
}

// Error logs a payload at ERROR
func (l *Logger) Error(payload any) {
	if !l.IsErrorEnabled() {
		l.stats.IncrementSuppressed()
		return
	}
	l.write(core.ErrorLevel, payload)
}

// write hands an accepted payload to the provider. Error payloads are
// reclassified as EXCEPTION. Failures, panics included, are absorbed.
func (l *Logger) write(level core.Level, payload any) {
	if l.provider == nil {
		return
	}
	if _, ok := payload.(error); ok {
		level = core.ExceptionLevel
	}

	rec := core.GetRecord()
	rec.Time = l.now()
	rec.Logger = l.name
	rec.Level = level
	rec.Payload = payload

	err := l.safeWrite(rec)
	core.PutRecord(rec)

	if err != nil {
		l.stats.IncrementFailed()
		l.diag.Debug("log write failed",
			zap.String("logger", l.name),
			zap.String("provider", l.kind),
			zap.Stringer("level", level),
			zap.Error(err),
		)
		return
	}
	l.stats.IncrementWritten(level)
}

func (l *Logger) safeWrite(rec *core.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return l.provider.Write(rec)
}

// close releases the provider; only the owning Registry calls it
func (l *Logger) close() error {
	if l.provider == nil {
		return nil
	}
	return l.provider.Close()
}
