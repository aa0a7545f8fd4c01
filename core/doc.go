// Package core defines the shared types used across slogger.
//
// It provides the Level type for severity gating, the Record type that
// represents a single accepted log event, and stack Frame capture for
// error payloads.
//
// Levels are ordered DEBUG < INFO < WARN < ERROR < EXCEPTION. The first
// four are thresholds a logger can be configured with; EXCEPTION is a
// classification applied automatically to records whose payload is an
// error. Any value outside the enumeration prints as "UNKNOWN".
//
// Record objects are pooled via sync.Pool. The logger gets a Record with
// GetRecord, hands it to its provider and returns it with PutRecord once
// Write has returned, so providers must render synchronously.
//
// Go errors do not carry a raise location. WithStack and Errorf attach the
// caller's stack to an error; StackOf recovers it anywhere in the wrap
// chain so that formatters can render the originating file and line.
package core
