package assessment

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Stopper cancels a scheduled callback. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Clock is the time source for sessions. Now may fail, in which case the
// session cannot measure response times.
type Clock interface {
	Now() (time.Time, error)
	AfterFunc(d time.Duration, f func()) Stopper
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading, so
// differences between two readings are immune to wall-clock jumps.
type SystemClock struct{}

func (SystemClock) Now() (time.Time, error) { return time.Now(), nil }

func (SystemClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// FakeClock is a manually driven Clock for tests. Callbacks scheduled with
// AfterFunc fire synchronously from Advance once their deadline is reached.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	err     error
	pending []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	at      time.Time
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewFakeClock returns a FakeClock starting at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return time.Time{}, c.err
	}
	return c.now, nil
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.pending = append(c.pending, t)
	return t
}

// Fail makes subsequent Now calls return err. Pass nil to recover.
func (c *FakeClock) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Advance moves the clock forward and runs every callback that became due,
// in deadline order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	var due, keep []*fakeTimer
	for _, t := range c.pending {
		switch {
		case t.stopped:
		case !t.at.After(now):
			t.stopped = true
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	c.pending = keep
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of scheduled callbacks that have not fired.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (c *FakeClock) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("FakeClock(%s)", c.now.Format(time.RFC3339Nano))
}
