// Package logger is the public API of slogger. Most users only need to
// import this package.
//
// A Registry maps logger names to configurations. Configure stores a
// configuration; Get returns the logger instance built from it:
//
//	logger.Configure("app", logger.Config{
//	    Provider: "file",
//	    Settings: provider.Settings{
//	        "enabled": true,
//	        "level":   logger.InfoLevel,
//	        "target":  "/var/log/app.log",
//	    },
//	})
//	log, err := logger.Get("app")
//	log.Info("ready")
//
// Instances are cached per name and provider kind together with the
// checksum of the configuration they were built from. When Configure
// changes a name's settings, the next Get closes the stale instance and
// builds a new one. Identical reconfiguration keeps the cached instance.
//
// A Logger is immutable after construction and safe for concurrent use.
// Level checks happen before any allocation, so filtered-out messages
// cost a boolean and an integer comparison. Error payloads are always
// recorded as EXCEPTION with their stack when one was captured via
// core.WithStack or core.Errorf.
//
// Write failures never reach the caller. They are counted in Stats and
// reported to the registry's diagnostic zap logger.
//
// The package initializes a default Registry with the file, console,
// mongodb and zap provider kinds. The package-level Configure and Get
// delegate to it.
package logger
