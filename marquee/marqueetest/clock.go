// Package marqueetest provides a manual clock for driving a marquee.Engine in
// tests.
package marqueetest

import (
	"sort"
	"time"

	"nowmarquee/marquee"
)

// Clock is a marquee.Scheduler whose time only moves on Advance. Like the
// engine it is not safe for concurrent use.
type Clock struct {
	now    time.Time
	seq    uint64
	timers []*timer
}

type timer struct {
	clock   *Clock
	when    time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewClock returns a clock set to a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	return c.now
}

// AfterFunc implements marquee.Scheduler.
func (c *Clock) AfterFunc(d time.Duration, fn func()) marquee.Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &timer{clock: c, when: c.now.Add(d), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Stop implements marquee.Timer.
func (t *timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.clock.remove(t)
	return true
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (c *Clock) Pending() int {
	return len(c.timers)
}

// NextIn returns how long until the earliest pending timer fires.
func (c *Clock) NextIn() (time.Duration, bool) {
	t := c.earliest()
	if t == nil {
		return 0, false
	}
	return t.when.Sub(c.now), true
}

// Advance moves time forward by d, firing due timers in deadline order.
// Timers scheduled by a callback fire too if they fall within d.
func (c *Clock) Advance(d time.Duration) {
	end := c.now.Add(d)
	for {
		t := c.earliest()
		if t == nil || t.when.After(end) {
			break
		}
		c.remove(t)
		if t.when.After(c.now) {
			c.now = t.when
		}
		t.fired = true
		t.fn()
	}
	c.now = end
}

// AdvanceToNext fires the earliest pending timer and reports whether there
// was one.
func (c *Clock) AdvanceToNext() bool {
	d, ok := c.NextIn()
	if !ok {
		return false
	}
	c.Advance(d)
	return true
}

func (c *Clock) earliest() *timer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		a, b := c.timers[i], c.timers[j]
		if a.when.Equal(b.when) {
			return a.seq < b.seq
		}
		return a.when.Before(b.when)
	})
	return c.timers[0]
}

func (c *Clock) remove(t *timer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}
