// Package consoleprovider writes records to stdout or stderr.
//
// Writes are serialized by a mutex held only around the single Write call
// on the stream. With color enabled the level name is rendered with a
// lipgloss style; lipgloss drops the escape codes when the stream is not
// a terminal.
package consoleprovider
