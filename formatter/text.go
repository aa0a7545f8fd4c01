package formatter

import (
	"bytes"
	"io"

	"github.com/philipp01105/slogger/core"
)

// TextFormatter formats records as "[<date>] <logger> - <LEVEL> - <payload>"
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	return &TextFormatter{Config: cfg.withDefaults()}
}

// Format formats a record as text
func (f *TextFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *TextFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatRecord formats a record into the given buffer (implements BufferFormatter).
func (f *TextFormatter) FormatRecord(rec *core.Record, buf *bytes.Buffer) {
	f.formatToBuffer(rec, buf)
}

// formatToBuffer writes the formatted record into the given buffer
func (f *TextFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) {
	buf.WriteByte('[')
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.DateFormat))
	buf.WriteString("] ")
	buf.WriteString(rec.Logger)
	buf.WriteString(" - ")

	name := rec.Level.String()
	if f.Decorate != nil {
		name = f.Decorate(rec.Level, name)
	}
	buf.WriteString(name)
	buf.WriteString(" - ")

	buf.WriteString(RenderPayload(rec.Payload, f.Payload))
	buf.WriteByte('\n')
}
