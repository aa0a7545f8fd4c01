package logger_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/philipp01105/slogger/logger"
	"github.com/philipp01105/slogger/provider"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
}

// Configure a name once and fetch its logger anywhere.
func Example() {
	prev := logger.SetDefault(logger.NewDefaultRegistry(logger.WithClock(fixedClock)))
	defer func() { _ = logger.SetDefault(prev).Reset() }()

	logger.Configure("app", logger.Config{
		Provider: "console",
		Settings: provider.Settings{"enabled": true, "level": logger.InfoLevel},
	})

	log, err := logger.Get("app")
	if err != nil {
		fmt.Println(err)
		return
	}

	log.Debug("not shown")
	log.Info("ready")
	log.Warn(42)
	log.Warn(errors.New("upstream timeout"))
	// Output:
	// [2026-03-01 09:30:00] app - INFO - ready
	// [2026-03-01 09:30:00] app - WARN - 42
	// [2026-03-01 09:30:00] app - EXCEPTION - upstream timeout
}

// Reconfiguring a name rebuilds its logger on the next Get.
func ExampleRegistry_Configure() {
	r := logger.NewDefaultRegistry(logger.WithClock(fixedClock))
	defer r.Close()

	r.Configure("jobs", logger.Config{Provider: "console"})
	before, _ := r.Get("jobs")

	r.Configure("jobs", logger.Config{Provider: "console"})
	same, _ := r.Get("jobs")

	r.Configure("jobs", logger.Config{
		Provider: "console",
		Settings: provider.Settings{"enabled": true, "level": logger.DebugLevel},
	})
	after, _ := r.Get("jobs")

	fmt.Println(before == same, before == after)
	after.Debug("rebuilt")
	// Output:
	// true false
	// [2026-03-01 09:30:00] jobs - DEBUG - rebuilt
}

// A payload formatter renders values that are not scalars.
func ExampleRegistry_Get() {
	r := logger.NewDefaultRegistry(logger.WithClock(fixedClock))
	defer r.Close()

	r.Configure("api", logger.Config{
		Provider: "console",
		Settings: provider.Settings{
			"enabled":    true,
			"level":      logger.InfoLevel,
			"dateFormat": time.RFC3339,
			"formatter": func(v any) string {
				return fmt.Sprintf("%+v", v)
			},
		},
	})

	log, err := r.Get("api")
	if err != nil {
		fmt.Println(err)
		return
	}
	log.Info(struct {
		Method string
		Status int
	}{"GET", 200})
	// Output:
	// [2026-03-01T09:30:00Z] api - INFO - {Method:GET Status:200}
}

// Get reports names that were never configured.
func ExampleRegistry_Get_notConfigured() {
	r := logger.NewRegistry()

	_, err := r.Get("missing")
	fmt.Println(errors.Is(err, logger.ErrNotConfigured))
	// Output:
	// true
}
