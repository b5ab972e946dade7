package main

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nowmarquee/marquee"
)

// timerMsg carries a due marquee timer back to the Update loop
type timerMsg struct {
	timer *teaTimer
}

// teaScheduler runs marquee timers on the Bubble Tea event loop. The timer
// goroutine only posts a timerMsg; the callback itself runs inside Update.
type teaScheduler struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func newScheduler() *teaScheduler {
	return &teaScheduler{}
}

// bind connects the scheduler to a running program
func (s *teaScheduler) bind(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *teaScheduler) post(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// AfterFunc implements marquee.Scheduler
func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) marquee.Timer {
	t := &teaTimer{fn: fn}
	t.timer = time.AfterFunc(d, func() {
		s.post(timerMsg{timer: t})
	})
	return t
}

// teaTimer is only touched from the Update goroutine, except for the
// underlying time.Timer
type teaTimer struct {
	fn    func()
	timer *time.Timer
	done  bool
}

// Stop implements marquee.Timer. A message already in flight is dropped
// when it arrives.
func (t *teaTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}

func (t *teaTimer) fire() {
	if t.done {
		return
	}
	t.done = true
	t.fn()
}
