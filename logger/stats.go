package logger

import (
	"sync/atomic"

	"github.com/philipp01105/slogger/core"
)

// Stats tracks per-logger emit outcomes
type Stats struct {
	// Separate atomic counters per accepted level
	WrittenDebug     uint64
	WrittenInfo      uint64
	WrittenWarn      uint64
	WrittenError     uint64
	WrittenException uint64
	// SuppressedTotal counts calls rejected by the gate
	SuppressedTotal uint64
	// FailedTotal counts writes the provider failed and the logger absorbed
	FailedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) counter(level core.Level) *uint64 {
	switch level {
	case core.DebugLevel:
		return &s.WrittenDebug
	case core.InfoLevel:
		return &s.WrittenInfo
	case core.WarnLevel:
		return &s.WrittenWarn
	case core.ErrorLevel:
		return &s.WrittenError
	case core.ExceptionLevel:
		return &s.WrittenException
	default:
		return nil
	}
}

// IncrementWritten atomically increments the written counter for a level
func (s *Stats) IncrementWritten(level core.Level) {
	if c := s.counter(level); c != nil {
		atomic.AddUint64(c, 1)
	}
}

// IncrementSuppressed atomically increments the suppressed counter
func (s *Stats) IncrementSuppressed() {
	atomic.AddUint64(&s.SuppressedTotal, 1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	atomic.AddUint64(&s.FailedTotal, 1)
}

// GetWritten returns the written count for a level
func (s *Stats) GetWritten(level core.Level) uint64 {
	if c := s.counter(level); c != nil {
		return atomic.LoadUint64(c)
	}
	return 0
}

// GetSuppressed returns the suppressed count
func (s *Stats) GetSuppressed() uint64 {
	return atomic.LoadUint64(&s.SuppressedTotal)
}

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 {
	return atomic.LoadUint64(&s.FailedTotal)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Written    map[core.Level]uint64
	Suppressed uint64
	Failed     uint64
}

// TotalWritten sums the written counts across levels
func (s Snapshot) TotalWritten() uint64 {
	var total uint64
	for _, n := range s.Written {
		total += n
	}
	return total
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	written := make(map[core.Level]uint64, 5)
	for _, level := range core.Levels() {
		written[level] = s.GetWritten(level)
	}
	return Snapshot{
		Written:    written,
		Suppressed: s.GetSuppressed(),
		Failed:     s.GetFailed(),
	}
}
