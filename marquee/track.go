package marquee

import "time"

// Track is a Renderer that remembers the last command so a host repainting
// on its own tick can sample the offset at any moment.
type Track struct {
	now      func() time.Time
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

// NewTrack returns a Track using now as its clock; nil means time.Now.
func NewTrack(now func() time.Time) *Track {
	if now == nil {
		now = time.Now
	}
	return &Track{now: now}
}

// SetOffset implements Renderer.
func (t *Track) SetOffset(x float64) {
	t.from, t.to = x, x
	t.duration = 0
}

// AnimateOffset implements Renderer.
func (t *Track) AnimateOffset(from, to float64, d time.Duration) {
	if d <= 0 {
		t.SetOffset(to)
		return
	}
	t.from, t.to = from, to
	t.start = t.now()
	t.duration = d
}

// Offset returns the offset at now, interpolated linearly while an animation
// is running and clamped to its end value afterwards.
func (t *Track) Offset(now time.Time) float64 {
	if t.duration <= 0 {
		return t.to
	}
	elapsed := now.Sub(t.start)
	switch {
	case elapsed <= 0:
		return t.from
	case elapsed >= t.duration:
		return t.to
	}
	frac := float64(elapsed) / float64(t.duration)
	return t.from + (t.to-t.from)*frac
}

// Animating reports whether an animation is in flight at now.
func (t *Track) Animating(now time.Time) bool {
	return t.duration > 0 && now.Sub(t.start) < t.duration
}
