package marquee

import (
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultSpeed is the scroll speed in length units per second.
	DefaultSpeed = 60.0
	// DefaultEpsilon pads the scroll distance so the last glyph is not clipped
	// by rounding.
	DefaultEpsilon = 1.0
	// DefaultStartDelay is the pause before each scroll.
	DefaultStartDelay = time.Second
	// DefaultEndDelay is the pause after each scroll.
	DefaultEndDelay = time.Second
)

// Option configures an Engine.
type Option func(*Engine)

// WithSpeed sets the scroll speed in length units per second. Non-positive
// values are ignored.
func WithSpeed(unitsPerSecond float64) Option {
	return func(e *Engine) {
		if unitsPerSecond > 0 && !math.IsInf(unitsPerSecond, 0) {
			e.speed = unitsPerSecond
		}
	}
}

// WithDelays sets the initial start and end delays.
func WithDelays(start, end time.Duration) Option {
	return func(e *Engine) {
		e.startDelay, e.endDelay = clampDelay(start), clampDelay(end)
	}
}

// WithEpsilon sets the padding added to the scroll distance. Negative values
// are ignored.
func WithEpsilon(epsilon float64) Option {
	return func(e *Engine) {
		if epsilon >= 0 && !math.IsInf(epsilon, 0) {
			e.epsilon = epsilon
		}
	}
}

// WithMeasurer replaces the default FaceMeasurer.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) {
		if m != nil {
			e.measurer = m
		}
	}
}

// WithLogger sets the logger used for phase transitions.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMeasuredFunc registers a callback receiving every measured text width,
// so a host can size its drawing region.
func WithMeasuredFunc(fn func(width float64)) Option {
	return func(e *Engine) {
		e.onMeasured = fn
	}
}

// WithPhaseFunc registers a callback invoked on every phase change.
func WithPhaseFunc(fn func(Phase)) Option {
	return func(e *Engine) {
		e.onPhase = fn
	}
}

func clampDelay(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
