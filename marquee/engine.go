// Package marquee scrolls a single line of text horizontally when it does not
// fit its container.
//
// An Engine measures the text, decides whether it fits and, if not, runs a
// repeating cycle: wait, scroll linearly until the trailing edge is visible,
// wait, snap back. Positioning commands go to a Renderer and every wait is a
// callback on a Scheduler, so the engine never blocks.
//
// Engine is confined to one goroutine. Text produced elsewhere must be handed
// to that goroutine before calling SetText.
package marquee

import (
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// State is a snapshot of the engine.
type State struct {
	Text           string
	MeasuredWidth  float64
	ContainerWidth float64
	Phase          Phase
	// Distance and Duration describe the scroll the next cycle would run.
	// Both are zero when the text fits.
	Distance float64
	Duration time.Duration
	Pending  bool
}

// Engine drives the marquee for one piece of text.
type Engine struct {
	renderer   Renderer
	scheduler  Scheduler
	measurer   Measurer
	logger     *zap.Logger
	onMeasured func(float64)
	onPhase    func(Phase)

	text           string
	font           Font
	measuredWidth  float64
	containerWidth float64
	phase          Phase

	speed      float64
	epsilon    float64
	startDelay time.Duration
	endDelay   time.Duration

	// pending is the only outstanding transition. generation changes every
	// time a transition is scheduled or cancelled; a callback carrying an
	// older generation does nothing.
	pending    Timer
	generation uint64
	closed     bool
}

// New creates an engine in the Idle phase. A nil renderer discards commands;
// a nil scheduler means the text never scrolls.
func New(r Renderer, s Scheduler, opts ...Option) *Engine {
	if r == nil {
		r = noopRenderer{}
	}
	if s == nil {
		s = idleScheduler{}
	}
	e := &Engine{
		renderer:   r,
		scheduler:  s,
		logger:     zap.NewNop(),
		speed:      DefaultSpeed,
		epsilon:    DefaultEpsilon,
		startDelay: DefaultStartDelay,
		endDelay:   DefaultEndDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.measurer == nil {
		e.measurer = NewFaceMeasurer()
	}
	return e
}

// SetText replaces the displayed text and restarts the cycle from the
// beginning. Calling it again with the same arguments yields the same state.
func (e *Engine) SetText(text string, containerWidth float64, f Font) {
	if e.closed {
		return
	}
	e.cancel()

	if math.IsNaN(containerWidth) || containerWidth < 0 {
		containerWidth = 0
	}
	e.text = norm.NFC.String(text)
	e.font = f
	e.containerWidth = containerWidth
	e.measuredWidth = e.measure(e.text, f)

	e.renderer.SetOffset(0)
	if e.onMeasured != nil {
		e.onMeasured(e.measuredWidth)
	}

	if !e.overflows() {
		e.setPhase(Idle)
		return
	}
	e.setPhase(WaitingToStart)
	e.schedule(e.startDelay, e.startScrollCycle)
}

// Stop cancels the cycle and snaps the text back to offset 0. The engine
// always ends in Idle; the next SetText starts a new cycle.
func (e *Engine) Stop() {
	if e.closed {
		return
	}
	e.cancel()
	e.renderer.SetOffset(0)
	e.setPhase(Idle)
}

// Close tears the engine down. No callback reaches the renderer afterwards
// and every later call is a no-op.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.Stop()
	e.closed = true
}

// ConfigureDelays changes the pauses. It takes effect on the next scroll
// cycle; a cycle already scrolling or waiting at the end keeps its delays.
func (e *Engine) ConfigureDelays(start, end time.Duration) {
	e.startDelay, e.endDelay = clampDelay(start), clampDelay(end)
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Text returns the normalized text last passed to SetText.
func (e *Engine) Text() string {
	return e.text
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	s := State{
		Text:           e.text,
		MeasuredWidth:  e.measuredWidth,
		ContainerWidth: e.containerWidth,
		Phase:          e.phase,
		Pending:        e.pending != nil,
	}
	if e.overflows() {
		s.Distance = e.distance()
		s.Duration = e.scrollDuration(s.Distance)
	}
	return s
}

func (e *Engine) startScrollCycle() {
	if e.phase != WaitingToStart || !e.overflows() {
		e.renderer.SetOffset(0)
		e.setPhase(Idle)
		return
	}
	distance := e.distance()
	duration := e.scrollDuration(distance)
	if duration <= 0 {
		e.renderer.SetOffset(0)
		e.setPhase(Idle)
		return
	}

	// the cycle keeps the end delay it started with
	endDelay := e.endDelay

	e.setPhase(Scrolling)
	e.renderer.AnimateOffset(0, -distance, duration)
	e.schedule(duration, func() {
		// pin the final value for hosts that do not interpolate
		e.renderer.SetOffset(-distance)
		e.setPhase(WaitingAtEnd)
		e.schedule(endDelay, e.resetCycle)
	})
}

func (e *Engine) resetCycle() {
	e.renderer.SetOffset(0)
	e.setPhase(WaitingToStart)
	e.schedule(e.startDelay, e.startScrollCycle)
}

// schedule replaces the pending transition with next, fired after d.
func (e *Engine) schedule(d time.Duration, next func()) {
	e.cancel()
	gen := e.generation
	e.pending = e.scheduler.AfterFunc(d, func() {
		if e.closed || gen != e.generation {
			return
		}
		e.pending = nil
		next()
	})
}

// cancel drops the pending transition, if any.
func (e *Engine) cancel() {
	e.generation++
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func (e *Engine) measure(text string, f Font) float64 {
	if text == "" {
		return 0
	}
	w := e.measurer.Measure(text, f)
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		e.logger.Debug("Discarding invalid text measurement",
			zap.Float64("width", w),
			zap.String("family", f.Family))
		return 0
	}
	return w
}

func (e *Engine) overflows() bool {
	return e.measuredWidth > e.containerWidth && e.distance() > 0
}

// distance aligns the trailing edge with the container edge, padded by
// epsilon. No gap is inserted before the cycle restarts.
func (e *Engine) distance() float64 {
	return e.measuredWidth - e.containerWidth + e.epsilon
}

// scrollDuration saturates at the longest representable duration.
func (e *Engine) scrollDuration(distance float64) time.Duration {
	if distance <= 0 || e.speed <= 0 {
		return 0
	}
	ns := distance / e.speed * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

func (e *Engine) setPhase(p Phase) {
	if p == e.phase {
		return
	}
	e.logger.Debug("Marquee phase changed",
		zap.Stringer("from", e.phase),
		zap.Stringer("to", p),
		zap.Float64("measured", e.measuredWidth),
		zap.Float64("container", e.containerWidth))
	e.phase = p
	if e.onPhase != nil {
		e.onPhase(p)
	}
}
