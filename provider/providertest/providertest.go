// Package providertest provides in-memory providers for testing loggers
// and registries.
package providertest

import (
	"errors"
	"sync"
	"time"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/provider"
)

// Kind is the provider kind tests register the fake factory under
const Kind = "memory"

var _ provider.Provider = &Provider{}

// Provider records every written record in memory
type Provider struct {
	Name     string
	Settings provider.Settings

	mu       sync.Mutex
	records  []core.Record
	writeErr error
	panicVal any
	closed   int
	closeErr error
}

// New creates an empty recording provider
func New(name string, settings provider.Settings) *Provider {
	return &Provider{Name: name, Settings: settings}
}

// Write copies rec, since records are returned to a pool after the call
func (p *Provider) Write(rec *core.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.panicVal != nil {
		panic(p.panicVal)
	}
	if p.writeErr != nil {
		return p.writeErr
	}
	p.records = append(p.records, *rec)
	return nil
}

// Close counts the call and returns the configured close error
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return p.closeErr
}

// FailWrites makes every following Write return err
func (p *Provider) FailWrites(err error) {
	p.mu.Lock()
	p.writeErr = err
	p.mu.Unlock()
}

// PanicOnWrite makes every following Write panic with v
func (p *Provider) PanicOnWrite(v any) {
	p.mu.Lock()
	p.panicVal = v
	p.mu.Unlock()
}

// FailClose makes every following Close return err
func (p *Provider) FailClose(err error) {
	p.mu.Lock()
	p.closeErr = err
	p.mu.Unlock()
}

// Records returns a copy of the recorded records
func (p *Provider) Records() []core.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]core.Record, len(p.records))
	copy(out, p.records)
	return out
}

// Closed returns how many times Close was called
func (p *Provider) Closed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// ErrConstruct is the default failure of a Factory set to fail
var ErrConstruct = errors.New("memory provider unavailable")

// Factory builds recording providers and keeps every one it built
type Factory struct {
	// Delay is slept inside every construction
	Delay time.Duration

	mu    sync.Mutex
	built []*Provider
	calls int
	err   error
}

// NewFactory creates a factory that succeeds until Fail is called
func NewFactory() *Factory {
	return &Factory{}
}

// Fail makes the following constructions return err. A nil err restores
// successful construction.
func (f *Factory) Fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// New is a provider.Factory
func (f *Factory) New(name string, settings provider.Settings) (provider.Provider, error) {
	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, provider.NewInitError(Kind, name, f.err)
	}
	p := New(name, settings)
	f.built = append(f.built, p)
	return p, nil
}

// Calls returns how many constructions were attempted
func (f *Factory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Built returns the providers constructed so far, oldest first
func (f *Factory) Built() []*Provider {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Provider, len(f.built))
	copy(out, f.built)
	return out
}

// Last returns the most recently built provider, or nil
func (f *Factory) Last() *Provider {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.built) == 0 {
		return nil
	}
	return f.built[len(f.built)-1]
}
