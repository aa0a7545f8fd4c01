package consoleprovider

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/formatter"
	"github.com/philipp01105/slogger/provider"
)

// Kind is the provider kind this package registers under
const Kind = "console"

// KeyColor enables coloured level names
const KeyColor = "color"

// Defaults returns the console provider's settings defaults
func Defaults() provider.Settings {
	return provider.Settings{
		provider.KeyTarget: "stdout",
		provider.KeyFormat: "text",
		KeyColor:           false,
	}
}

var levelStyles = map[core.Level]lipgloss.Style{
	core.DebugLevel:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	core.InfoLevel:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.WarnLevel:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ErrorLevel:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ExceptionLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

func colorize(level core.Level, name string) string {
	if style, ok := levelStyles[level]; ok {
		return style.Render(name)
	}
	return name
}

// lockedWriter wraps an io.Writer with a mutex, acquiring the lock only
// for Write calls. Formatters prepare data in their own pooled buffers
// and call Write once, so the lock is held only during the actual I/O.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	n, err = lw.w.Write(p)
	lw.mu.Unlock()
	return
}

// Provider writes rendered records to a stream
type Provider struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	mu              sync.Mutex
	lw              lockedWriter
	closed          chan struct{}
}

// New is the provider.Factory for the console kind
func New(name string, s provider.Settings) (provider.Provider, error) {
	var w io.Writer
	switch target := s.String(provider.KeyTarget, "stdout"); target {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		return nil, provider.NewInitError(Kind, name, fmt.Errorf("unknown stream %q", target))
	}

	cfg := s.FormatterConfig()
	if s.Bool(KeyColor, false) {
		cfg.Decorate = colorize
	}
	return NewWithWriter(w, formatter.New(s.String(provider.KeyFormat, "text"), cfg)), nil
}

// NewWithWriter creates a console provider writing to w
func NewWithWriter(w io.Writer, f formatter.Formatter) *Provider {
	p := &Provider{
		writer:    w,
		formatter: f,
		closed:    make(chan struct{}),
	}
	p.lw = lockedWriter{mu: &p.mu, w: w}

	// Cache WriterFormatter for zero-alloc path
	p.writerFormatter, _ = f.(formatter.WriterFormatter)
	return p
}

// Write renders the record and writes it to the stream
func (p *Provider) Write(rec *core.Record) error {
	select {
	case <-p.closed:
		return os.ErrClosed
	default:
	}

	if p.writerFormatter != nil {
		return p.writerFormatter.FormatTo(rec, &p.lw)
	}

	data, err := p.formatter.Format(rec)
	if err != nil {
		return err
	}
	_, err = p.lw.Write(data)
	return err
}

// Close stops the provider. The stream itself is left open.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.closed:
		return nil // Already closed
	default:
		close(p.closed)
	}
	return nil
}
