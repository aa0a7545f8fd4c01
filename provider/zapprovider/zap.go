package zapprovider

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/formatter"
	"github.com/philipp01105/slogger/provider"
)

// Kind is the provider kind this package registers under
const Kind = "zap"

// KeyEncoding selects the zap encoder ("console" or "json")
const KeyEncoding = "encoding"

// LevelNameKey carries the slogger level name, which distinguishes
// EXCEPTION from ERROR records
const LevelNameKey = "level_name"

// Defaults returns the zap provider's settings defaults
func Defaults() provider.Settings {
	return provider.Settings{
		provider.KeyTarget: "stderr",
		KeyEncoding:        "console",
	}
}

// Provider forwards records into a zap core
type Provider struct {
	log     *zap.Logger
	payload formatter.PayloadFunc
	closeFn func()
}

// New is the provider.Factory for the zap kind
func New(name string, s provider.Settings) (provider.Provider, error) {
	sink, closeFn, err := zap.Open(s.String(provider.KeyTarget, "stderr"))
	if err != nil {
		return nil, provider.NewInitError(Kind, name, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(s.DateFormat())

	var enc zapcore.Encoder
	if s.String(KeyEncoding, "console") == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return NewWithCore(name, zapcore.NewCore(enc, sink, zapcore.DebugLevel), s.Formatter(), closeFn), nil
}

// NewWithCore creates a provider writing to an existing zap core. closeFn,
// when non-nil, runs on Close.
func NewWithCore(name string, c zapcore.Core, payload formatter.PayloadFunc, closeFn func()) *Provider {
	return &Provider{
		log:     zap.New(c).Named(name),
		payload: payload,
		closeFn: closeFn,
	}
}

// zapLevel maps a record level onto zap's levels
func zapLevel(level core.Level) zapcore.Level {
	switch level {
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel, core.ExceptionLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Write forwards the record, keeping its timestamp
func (p *Provider) Write(rec *core.Record) error {
	ce := p.log.Check(zapLevel(rec.Level), formatter.RenderPayload(rec.Payload, p.payload))
	if ce == nil {
		return nil
	}
	ce.Time = rec.Time
	ce.Write(zap.String(LevelNameKey, rec.Level.String()))
	return nil
}

// Close flushes the core and releases the output
func (p *Provider) Close() error {
	// Sync fails on terminals and pipes; nothing buffered is lost there
	_ = p.log.Sync()
	if p.closeFn != nil {
		p.closeFn()
	}
	return nil
}
