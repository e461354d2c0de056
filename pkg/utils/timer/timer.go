// Package timer measures the total duration of a command and of its current stage.
package timer

import (
	"sync"
	"time"
)

// Timer tracks elapsed time for a whole command and for its current stage.
type Timer interface {
	// Start resets the timer and begins measuring.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total elapsed time and the time spent in the current stage.
	GetTiming() (time.Duration, time.Duration)
	// Stop freezes the measured durations.
	Stop()
}

// Clock returns the current time.
type Clock func() time.Time

type timer struct {
	mu         sync.Mutex
	now        Clock
	start      time.Time
	stageStart time.Time
	stoppedAt  time.Time
}

// New creates a Timer based on the wall clock.
func New() Timer {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Timer reading time from clock.
func NewWithClock(clock Clock) Timer {
	return &timer{now: clock}
}

func (t *timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.start = now
	t.stageStart = now
	t.stoppedAt = time.Time{}
}

func (t *timer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stageStart = t.now()
}

func (t *timer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.start.IsZero() {
		return 0, 0
	}

	end := t.stoppedAt
	if end.IsZero() {
		end = t.now()
	}

	return end.Sub(t.start), end.Sub(t.stageStart)
}

func (t *timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stoppedAt.IsZero() {
		t.stoppedAt = t.now()
	}
}
