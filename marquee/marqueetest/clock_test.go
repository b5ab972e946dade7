package marqueetest

import (
	"reflect"
	"testing"
	"time"
)

func TestClockFiresInOrder(t *testing.T) {
	c := NewClock()
	var fired []string

	c.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	c.AfterFunc(2*time.Second, func() { fired = append(fired, "c") })

	c.Advance(1500 * time.Millisecond)
	if want := []string{"a"}; !reflect.DeepEqual(fired, want) {
		t.Fatalf("fired = %v; want %v", fired, want)
	}

	c.Advance(time.Second)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v; want %v", fired, want)
	}
	if n := c.Pending(); n != 0 {
		t.Errorf("Pending() = %d; want 0", n)
	}
}

func TestClockNestedTimers(t *testing.T) {
	c := NewClock()
	start := c.Now()
	var at []time.Duration

	var tick func()
	tick = func() {
		at = append(at, c.Now().Sub(start))
		if len(at) < 3 {
			c.AfterFunc(time.Second, tick)
		}
	}
	c.AfterFunc(time.Second, tick)

	c.Advance(10 * time.Second)
	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("fired at %v; want %v", at, want)
	}
	if got := c.Now().Sub(start); got != 10*time.Second {
		t.Errorf("Now() advanced %v; want 10s", got)
	}
}

func TestClockStop(t *testing.T) {
	c := NewClock()
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Expected Stop to report a pending timer")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to report false")
	}
	c.Advance(time.Minute)
	if fired {
		t.Error("Stopped timer fired")
	}
	if _, ok := c.NextIn(); ok {
		t.Error("Expected no pending timers")
	}
	if c.AdvanceToNext() {
		t.Error("AdvanceToNext reported a timer on an empty clock")
	}
}

func TestClockNegativeDelay(t *testing.T) {
	c := NewClock()
	fired := false
	c.AfterFunc(-time.Second, func() { fired = true })

	if d, ok := c.NextIn(); !ok || d != 0 {
		t.Errorf("NextIn() = %v, %v; want 0, true", d, ok)
	}
	c.Advance(0)
	if !fired {
		t.Error("Expected timer with negative delay to fire on Advance(0)")
	}
}
