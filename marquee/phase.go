package marquee

// Phase is one step of the marquee lifecycle.
type Phase int

const (
	// Idle means the text fits or the engine was stopped. Nothing is scheduled.
	Idle Phase = iota
	// WaitingToStart is the pause before the text starts moving.
	WaitingToStart
	// Scrolling means the linear offset animation is running.
	Scrolling
	// WaitingAtEnd keeps the trailing edge visible before snapping back.
	WaitingAtEnd
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case WaitingToStart:
		return "waiting-to-start"
	case Scrolling:
		return "scrolling"
	case WaitingAtEnd:
		return "waiting-at-end"
	default:
		return "unknown"
	}
}
