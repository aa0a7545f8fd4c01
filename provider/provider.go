package provider

import (
	"errors"
	"fmt"

	"github.com/philipp01105/slogger/core"
)

// Provider is a sink that durably records accepted log records
type Provider interface {
	// Write renders and persists a single record. The record is only valid
	// for the duration of the call.
	Write(rec *core.Record) error

	// Close releases the sink's resources
	Close() error
}

// Factory constructs a provider for the logger name from resolved settings
type Factory func(name string, settings Settings) (Provider, error)

// ErrInit matches every InitError via errors.Is
var ErrInit = errors.New("provider initialization failed")

// InitError reports that a sink's underlying resource could not be prepared
type InitError struct {
	Kind  string
	Name  string
	Cause error
}

// NewInitError creates an InitError for the provider kind and logger name
func NewInitError(kind, name string, cause error) *InitError {
	return &InitError{Kind: kind, Name: name, Cause: cause}
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s provider for logger %q: %v", e.Kind, e.Name, e.Cause)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrInit) hold for every InitError
func (e *InitError) Is(target error) bool {
	return target == ErrInit
}
