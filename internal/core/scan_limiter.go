package core

// scan_limiter.go bounds how many scans run at once.
//
// Each scan holds its table in memory, so the HTTP surface admits at most
// maxConcurrent scans. Callers that cannot get a slot within maxWait fail
// with ErrTooManyScans. WaitForDrain blocks shutdown until in-flight scans
// finish.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyScans is returned when every scan slot stayed busy for the whole wait.
var ErrTooManyScans = errors.New("too many concurrent scans, please try again later")

const (
	DefaultMaxConcurrentScans = 4
	DefaultMaxScanWait        = 10 * time.Second
)

// ScanLimiter is a semaphore over scan slots.
type ScanLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewScanLimiter creates a limiter with maxConcurrent slots. Non-positive
// arguments fall back to the defaults.
func NewScanLimiter(maxConcurrent int, maxWait time.Duration) *ScanLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentScans
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxScanWait
	}
	return &ScanLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire waits for a slot. It returns ErrTooManyScans after maxWait, or the
// context error if ctx ends first. Every successful Acquire must be paired
// with Release.
func (l *ScanLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-timer.C:
		return ErrTooManyScans
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *ScanLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return true
	default:
		return false
	}
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *ScanLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of scans holding a slot.
func (l *ScanLimiter) Active() int {
	return int(l.active.Load())
}

// Available returns the number of free slots.
func (l *ScanLimiter) Available() int {
	return cap(l.slots) - len(l.slots)
}

// MaxConcurrent returns the slot count.
func (l *ScanLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no scan holds a slot or ctx ends.
func (l *ScanLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// ScanLimiterStatus is a point-in-time view of the limiter.
type ScanLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the limiter's current state.
func (l *ScanLimiter) Status() ScanLimiterStatus {
	return ScanLimiterStatus{
		Active:        l.Active(),
		Available:     l.Available(),
		MaxConcurrent: l.MaxConcurrent(),
	}
}
