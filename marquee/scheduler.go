package marquee

import "time"

// Timer is a handle to a callback registered with a Scheduler.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped a timer that had not fired yet.
	Stop() bool
}

// Scheduler runs deferred callbacks on the engine's thread.
//
// Implementations must invoke fn on the same goroutine that calls the
// Engine methods, never concurrently with them.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Renderer receives positioning commands from the engine.
type Renderer interface {
	// SetOffset moves the text to x immediately, removing any animation.
	SetOffset(x float64)
	// AnimateOffset moves the text from one offset to another over d with
	// constant velocity.
	AnimateOffset(from, to float64, d time.Duration)
}

type noopRenderer struct{}

func (noopRenderer) SetOffset(float64)                             {}
func (noopRenderer) AnimateOffset(float64, float64, time.Duration) {}

// idleScheduler never fires. Engines built without a scheduler render
// statically.
type idleScheduler struct{}

type idleTimer struct{}

func (idleTimer) Stop() bool { return false }

func (idleScheduler) AfterFunc(time.Duration, func()) Timer { return idleTimer{} }
