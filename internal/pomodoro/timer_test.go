package pomodoro

import (
	"testing"
	"time"
)

func TestCountdown(t *testing.T) {
	timer := New(3 * time.Second)

	if timer.Running() {
		t.Fatal("new timer is running")
	}
	if !timer.Start() {
		t.Fatal("start failed")
	}
	if timer.Start() {
		t.Error("second start while running succeeded")
	}

	if timer.Tick(time.Second) {
		t.Error("finished after 1s of 3s")
	}
	if timer.Tick(time.Second) {
		t.Error("finished after 2s of 3s")
	}
	if !timer.Tick(time.Second) {
		t.Error("not finished after 3s of 3s")
	}
	if timer.Running() {
		t.Error("still running after finish")
	}
	if timer.Tick(time.Second) {
		t.Error("stopped timer reported a finish")
	}
}

func TestClock(t *testing.T) {
	timer := New(25 * time.Minute)
	if got := timer.Clock(); got != "25:00" {
		t.Errorf("clock: got %s, want 25:00", got)
	}

	timer.Start()
	timer.Tick(61 * time.Second)
	if got := timer.Clock(); got != "23:59" {
		t.Errorf("clock after 61s: got %s, want 23:59", got)
	}
}

func TestReset(t *testing.T) {
	timer := New(2 * time.Second)
	timer.Start()
	timer.Tick(time.Second)
	timer.Reset()

	if timer.Running() {
		t.Error("running after reset")
	}
	if timer.Remaining() != 2*time.Second {
		t.Errorf("remaining after reset: got %v, want 2s", timer.Remaining())
	}
}

func TestDefaultDuration(t *testing.T) {
	timer := New(0)
	if timer.Remaining() != DefaultDuration {
		t.Errorf("remaining: got %v, want %v", timer.Remaining(), DefaultDuration)
	}
}
