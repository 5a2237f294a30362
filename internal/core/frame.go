package core

import (
	"context"
	"time"
)

// FrameFunc is a frame callback. now is the host timestamp of the frame.
type FrameFunc func(now time.Time)

// FrameID identifies a requested frame callback. Zero means "none".
type FrameID uint64

type pendingFrame struct {
	id        FrameID
	fn        FrameFunc
	cancelled bool
}

// Loop is a cooperative "request next frame" scheduler.
// Callbacks requested with Request run once, on the next Pump. Callbacks
// requested while a Pump is in progress wait for the following Pump.
// Loop is not safe for concurrent use; the host pumps it from its own tick.
type Loop struct {
	nextID   FrameID
	pending  []*pendingFrame
	inFlight []*pendingFrame
}

// NewLoop creates an empty frame loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Request schedules fn for the next frame and returns its ID.
func (l *Loop) Request(fn FrameFunc) FrameID {
	l.nextID++
	l.pending = append(l.pending, &pendingFrame{id: l.nextID, fn: fn})
	return l.nextID
}

// Cancel deregisters a pending callback. Unknown or already-run IDs are ignored.
func (l *Loop) Cancel(id FrameID) {
	if id == 0 {
		return
	}
	for i, p := range l.pending {
		if p.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	for _, p := range l.inFlight {
		if p.id == id {
			p.cancelled = true
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next Pump.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Pump runs every callback that was pending when it was called.
// Returns the number of callbacks executed.
func (l *Loop) Pump(now time.Time) int {
	batch := l.pending
	l.pending = nil
	l.inFlight = batch
	defer func() { l.inFlight = nil }()

	ran := 0
	for _, p := range batch {
		if p.cancelled {
			continue
		}
		p.fn(now)
		ran++
	}
	return ran
}

// RunLoop pumps the loop on a fixed-interval ticker until ctx is cancelled.
// It blocks the calling goroutine, which becomes the loop's only caller.
func RunLoop(ctx context.Context, l *Loop, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Pump(now)
		}
	}
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. Used for headless rendering and tests.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}
