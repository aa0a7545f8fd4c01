package logger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/philipp01105/slogger/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a Logger.
// The record message and its attributes render as a single
// "message key=value ..." payload. An attribute holding an error turns the
// record into an exception carrying that error's stack.
type SlogHandler struct {
	logger *Logger
	attrs  string
	group  string
	// cause is the first error among the attributes bound via WithAttrs
	cause error
}

// NewSlogHandler creates a new slog.Handler adapter writing to l
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether the logger's gate is open for the level
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.isEnabled(slogLevelToCore(level))
}

// Handle renders the record and passes it through the logger's gate
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	level := slogLevelToCore(record.Level)
	if !s.logger.isEnabled(level) {
		s.logger.stats.IncrementSuppressed()
		return nil
	}

	var b strings.Builder
	b.WriteString(record.Message)
	b.WriteString(s.attrs)

	var cause error
	record.Attrs(func(a slog.Attr) bool {
		if err := appendAttr(&b, s.group, a); err != nil && cause == nil {
			cause = err
		}
		return true
	})

	if cause == nil {
		cause = s.cause
	}
	if cause != nil {
		s.logger.write(level, &slogError{msg: b.String(), cause: cause})
		return nil
	}
	s.logger.write(level, b.String())
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(s.attrs)
	cause := s.cause
	for _, a := range attrs {
		if err := appendAttr(&b, s.group, a); err != nil && cause == nil {
			cause = err
		}
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  b.String(),
		group:  s.group,
		cause:  cause,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	group := name
	if s.group != "" {
		group = s.group + "." + name
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  s.attrs,
		group:  group,
		cause:  s.cause,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr writes " key=value" with the group prefix applied and returns
// the attribute's error value, if any.
func appendAttr(b *strings.Builder, group string, a slog.Attr) error {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return nil
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		var cause error
		for _, ga := range a.Value.Group() {
			if err := appendAttr(b, key, ga); err != nil && cause == nil {
				cause = err
			}
		}
		return cause
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())

	if a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return err
		}
	}
	return nil
}

// slogError carries the rendered record text while keeping the attribute
// error reachable for stack lookup.
type slogError struct {
	msg   string
	cause error
}

func (e *slogError) Error() string { return e.msg }

func (e *slogError) Unwrap() error { return e.cause }
