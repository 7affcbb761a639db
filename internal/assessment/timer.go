package assessment

import (
	"fmt"
	"time"
)

// Timer measures the elapsed time of a single attempt. It is restarted for
// every attempt, so readings are never cumulative across retries.
type Timer struct {
	clock     Clock
	startedAt time.Time
	running   bool
}

// NewTimer returns a stopped Timer reading from clock.
func NewTimer(clock Clock) *Timer {
	return &Timer{clock: clock}
}

// Start (re)starts the timer at the current clock reading.
func (t *Timer) Start() error {
	now, err := t.now()
	if err != nil {
		t.running = false
		return err
	}
	t.startedAt = now
	t.running = true
	return nil
}

// Elapsed returns the time since Start without stopping the timer.
func (t *Timer) Elapsed() (time.Duration, error) {
	if !t.running {
		return 0, nil
	}
	now, err := t.now()
	if err != nil {
		return 0, err
	}
	return nonNegative(now.Sub(t.startedAt)), nil
}

// Stop stops the timer and returns the elapsed time together with the
// clock reading it was taken at.
func (t *Timer) Stop() (time.Duration, time.Time, error) {
	if !t.running {
		return 0, time.Time{}, fmt.Errorf("%w: timer not running", ErrTimerUnavailable)
	}
	now, err := t.now()
	if err != nil {
		t.running = false
		return 0, time.Time{}, err
	}
	t.running = false
	return nonNegative(now.Sub(t.startedAt)), now, nil
}

// StartedAt returns the reading of the most recent Start.
func (t *Timer) StartedAt() time.Time {
	return t.startedAt
}

// Running reports whether the timer is started.
func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) now() (time.Time, error) {
	now, err := t.clock.Now()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrTimerUnavailable, err)
	}
	return now, nil
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
