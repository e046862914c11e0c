package sequence

import (
	"sync/atomic"
	"time"
)

// Statistics tracks the operations performed on a single sequence.
// It is always collected and safe to read from other goroutines.
type Statistics struct {
	reads         atomic.Int64
	mutations     atomic.Int64
	persistentOps atomic.Int64
	failures      atomic.Int64
	maxLength     atomic.Int64

	startTime time.Time
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{startTime: time.Now()}
}

// Read records a read operation.
func (s *Statistics) Read() {
	s.reads.Add(1)
}

// Mutation records an in-place modification.
func (s *Statistics) Mutation() {
	s.mutations.Add(1)
}

// Persistent records an operation that produced a new sequence.
func (s *Statistics) Persistent() {
	s.persistentOps.Add(1)
}

// Failure records a rejected operation.
func (s *Statistics) Failure() {
	s.failures.Add(1)
}

// ObserveLength raises the high-water mark if length exceeds it.
func (s *Statistics) ObserveLength(length int) {
	n := int64(length)
	for {
		current := s.maxLength.Load()
		if n <= current || s.maxLength.CompareAndSwap(current, n) {
			return
		}
	}
}

// Reads returns the number of read operations.
func (s *Statistics) Reads() int64 {
	return s.reads.Load()
}

// Mutations returns the number of in-place modifications.
func (s *Statistics) Mutations() int64 {
	return s.mutations.Load()
}

// PersistentOps returns the number of persistent operations.
func (s *Statistics) PersistentOps() int64 {
	return s.persistentOps.Load()
}

// Failures returns the number of rejected operations.
func (s *Statistics) Failures() int64 {
	return s.failures.Load()
}

// MaxLength returns the largest length the sequence has reached.
func (s *Statistics) MaxLength() int64 {
	return s.maxLength.Load()
}

// FailureRate returns failures over all recorded operations (0.0 to 1.0).
func (s *Statistics) FailureRate() float64 {
	total := s.Reads() + s.Mutations() + s.PersistentOps() + s.Failures()
	if total == 0 {
		return 0.0
	}
	return float64(s.Failures()) / float64(total)
}

// Uptime returns how long ago the sequence was created.
func (s *Statistics) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// Reset sets all counters to zero. The length high-water mark is kept.
func (s *Statistics) Reset() {
	s.reads.Store(0)
	s.mutations.Store(0)
	s.persistentOps.Store(0)
	s.failures.Store(0)
}

// StatsSummary is a point-in-time snapshot of Statistics.
type StatsSummary struct {
	Reads         int64         `json:"reads"`
	Mutations     int64         `json:"mutations"`
	PersistentOps int64         `json:"persistent_ops"`
	Failures      int64         `json:"failures"`
	MaxLength     int64         `json:"max_length"`
	FailureRate   float64       `json:"failure_rate"`
	Uptime        time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Reads:         s.Reads(),
		Mutations:     s.Mutations(),
		PersistentOps: s.PersistentOps(),
		Failures:      s.Failures(),
		MaxLength:     s.MaxLength(),
		FailureRate:   s.FailureRate(),
		Uptime:        s.Uptime(),
	}
}
