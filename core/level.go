package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Level represents the severity level of a log record
type Level int

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for general informational messages
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages (default threshold)
	ErrorLevel
	// ExceptionLevel is assigned to records whose payload is an error.
	// It is never a configured threshold.
	ExceptionLevel
)

// UnknownLevelName is returned for values outside the enumeration
const UnknownLevelName = "UNKNOWN"

var levelNames = [...]string{
	DebugLevel:     "DEBUG",
	InfoLevel:      "INFO",
	WarnLevel:      "WARN",
	ErrorLevel:     "ERROR",
	ExceptionLevel: "EXCEPTION",
}

// String returns the string representation of the level
func (l Level) String() string {
	if !l.Valid() {
		return UnknownLevelName
	}
	return levelNames[l]
}

// Valid reports whether l is one of the enumerated levels
func (l Level) Valid() bool {
	return l >= DebugLevel && l <= ExceptionLevel
}

// Threshold reports whether l may be used as a configured threshold.
// EXCEPTION is a classification, not a threshold.
func (l Level) Threshold() bool {
	return l >= DebugLevel && l <= ErrorLevel
}

// Levels returns every level in ascending order
func Levels() []Level {
	return []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, ExceptionLevel}
}

// ParseLevel converts a level name (or its numeric value) to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "EXCEPTION":
		return ExceptionLevel, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err == nil && Level(n).Valid() {
		return Level(n), nil
	}
	return ErrorLevel, fmt.Errorf("unknown level %q", s)
}
