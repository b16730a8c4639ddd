// Package pomodoro implements the focus countdown timer.
package pomodoro

import (
	"fmt"
	"time"
)

// DefaultDuration is the classic 25-minute focus session.
const DefaultDuration = 25 * time.Minute

// Timer is a countdown driven by an external clock tick. It has no
// goroutine of its own; the UI ticks it once per second.
type Timer struct {
	duration  time.Duration
	remaining time.Duration
	running   bool
}

// New returns a stopped timer. A non-positive duration falls back to
// the default.
func New(d time.Duration) *Timer {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Timer{duration: d, remaining: d}
}

// Start begins a session. It reports false if one is already running.
func (t *Timer) Start() bool {
	if t.running {
		return false
	}
	t.remaining = t.duration
	t.running = true
	return true
}

// Tick advances the countdown by step and reports whether the session
// finished on this tick. Ticking a stopped timer does nothing.
func (t *Timer) Tick(step time.Duration) bool {
	if !t.running {
		return false
	}
	t.remaining -= step
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.running = false
	return true
}

// Running reports whether a session is in progress.
func (t *Timer) Running() bool {
	return t.running
}

// Remaining returns the time left in the current session.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Reset stops the timer and restores the full duration.
func (t *Timer) Reset() {
	t.running = false
	t.remaining = t.duration
}

// Clock formats the remaining time as MM:SS.
func (t *Timer) Clock() string {
	secs := int(t.remaining.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
