// Package formatter defines how log records are rendered into bytes.
//
// A record renders as a fixed prefix followed by its payload:
//
//	[2026-01-15 12:00:00] app - WARN - disk almost full
//
// The payload rules are shared by every provider through RenderPayload:
// errors render with their message, raise location and caller frames;
// strings, booleans and numbers render as their literal value; anything
// else goes through the configured PayloadFunc or, without one, an
// indented go-spew dump.
//
// Formatter returns a []byte, WriterFormatter writes straight to an
// io.Writer and BufferFormatter fills a caller-owned bytes.Buffer.
// Providers check for BufferFormatter at construction time and prefer it,
// so the steady-state write path does not allocate an intermediate slice.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large stack trace from permanently inflating memory usage.
package formatter
