package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/slogger/core"
)

// DefaultDateFormat is the Go layout used when no dateFormat is configured
const DefaultDateFormat = "2006-01-02 15:04:05"

// Formatter defines the interface for record formatters
type Formatter interface {
	// Format formats a record into bytes
	Format(rec *core.Record) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a record and writes it directly to the writer
	FormatTo(rec *core.Record, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatRecord formats a record into the given buffer.
	FormatRecord(rec *core.Record, buf *bytes.Buffer)
}

// PayloadFunc renders a non-scalar payload into a string
type PayloadFunc func(payload any) string

// LevelDecorator rewrites the rendered level name, e.g. to add colour
type LevelDecorator func(level core.Level, name string) string

// Config holds common formatter configuration
type Config struct {
	// DateFormat is the Go time layout of the record timestamp (empty for DefaultDateFormat)
	DateFormat string
	// Payload renders non-scalar payloads (nil for a structured dump)
	Payload PayloadFunc
	// Decorate rewrites the level name in text output (nil leaves it untouched)
	Decorate LevelDecorator
}

func (c Config) withDefaults() Config {
	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	return c
}

// New returns the formatter registered under name ("text" or "json").
// Unknown names fall back to text.
func New(name string, cfg Config) Formatter {
	if name == "json" {
		return NewJSONFormatter(cfg)
	}
	return NewTextFormatter(cfg)
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
