package fileprovider

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/formatter"
	"github.com/philipp01105/slogger/provider"
)

// Kind is the provider kind this package registers under
const Kind = "file"

// DefaultTarget is the log file used when no target is configured
const DefaultTarget = "application.log"

// Rotation settings keys
const (
	KeyMaxSize    = "maxSize"
	KeyMaxBackups = "maxBackups"
	KeyMaxAge     = "maxAge"
	KeyCompress   = "compress"
)

// Defaults returns the file provider's settings defaults
func Defaults() provider.Settings {
	return provider.Settings{
		provider.KeyTarget: DefaultTarget,
		provider.KeyFormat: "text",
	}
}

// Provider appends one rendered record per write to a file
type Provider struct {
	path            string
	file            *os.File
	rotator         *lumberjack.Logger
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	mu              sync.Mutex
	buf             bytes.Buffer
	closed          bool
}

// New is the provider.Factory for the file kind
func New(name string, s provider.Settings) (provider.Provider, error) {
	p, err := Open(name, s)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open creates the file provider for a logger. It creates the parent
// directory and opens the file for appending, so every failure to prepare
// the target surfaces here rather than on the first write.
func Open(name string, s provider.Settings) (*Provider, error) {
	path := s.String(provider.KeyTarget, DefaultTarget)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, provider.NewInitError(Kind, name, fmt.Errorf("could not create directory %q: %w", dir, err))
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, provider.NewInitError(Kind, name, fmt.Errorf("could not create file %q: %w", path, err))
	}

	p := &Provider{
		path:      path,
		formatter: formatter.New(s.String(provider.KeyFormat, "text"), s.FormatterConfig()),
	}
	p.bufferFormatter, _ = p.formatter.(formatter.BufferFormatter)
	p.buf.Grow(256)

	if maxSize := s.Int(KeyMaxSize, 0); maxSize > 0 {
		// lumberjack owns the file from here on
		if err := file.Close(); err != nil {
			return nil, provider.NewInitError(Kind, name, err)
		}
		p.rotator = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSize,
			MaxBackups: s.Int(KeyMaxBackups, 0),
			MaxAge:     s.Int(KeyMaxAge, 0),
			Compress:   s.Bool(KeyCompress, false),
		}
		return p, nil
	}

	p.file = file
	return p, nil
}

// Path returns the file the provider appends to
func (p *Provider) Path() string {
	return p.path
}

// Write renders the record and appends it as one locked write
func (p *Provider) Write(rec *core.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return os.ErrClosed
	}

	p.buf.Reset()
	if p.bufferFormatter != nil {
		p.bufferFormatter.FormatRecord(rec, &p.buf)
	} else {
		data, err := p.formatter.Format(rec)
		if err != nil {
			return err
		}
		p.buf.Write(data)
	}

	if p.rotator != nil {
		_, err := p.rotator.Write(p.buf.Bytes())
		return err
	}
	return appendLocked(p.file, p.buf.Bytes())
}

// Close syncs and closes the underlying file. Closing twice is a no-op.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.rotator != nil {
		return p.rotator.Close()
	}

	syncErr := p.file.Sync()
	if syncErr != nil {
		p.file.Close()
		return syncErr
	}
	return p.file.Close()
}

var _ provider.Provider = (*Provider)(nil)
