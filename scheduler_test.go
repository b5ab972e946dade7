package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestTeaSchedulerPostsMessage checks that a due timer becomes a timerMsg and
// the callback only runs when the message is handled
func TestTeaSchedulerPostsMessage(t *testing.T) {
	msgs := make(chan tea.Msg, 1)
	s := newScheduler()
	s.bind(func(msg tea.Msg) { msgs <- msg })

	fired := 0
	s.AfterFunc(time.Millisecond, func() { fired++ })

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(time.Second):
		t.Fatal("Timeout: timer message was not posted")
	}

	tm, ok := msg.(timerMsg)
	if !ok {
		t.Fatalf("Expected timerMsg, got %T", msg)
	}
	if fired != 0 {
		t.Fatal("Callback ran before the message was handled")
	}

	tm.timer.fire()
	tm.timer.fire()
	if fired != 1 {
		t.Errorf("Expected callback to run once, ran %d times", fired)
	}
	if tm.timer.Stop() {
		t.Error("Stop after firing should report false")
	}
}

// TestTeaSchedulerStopDropsQueuedMessage covers a timer stopped after its
// message was already posted
func TestTeaSchedulerStopDropsQueuedMessage(t *testing.T) {
	msgs := make(chan tea.Msg, 1)
	s := newScheduler()
	s.bind(func(msg tea.Msg) { msgs <- msg })

	fired := false
	timer := s.AfterFunc(time.Millisecond, func() { fired = true })

	var tm timerMsg
	select {
	case msg := <-msgs:
		tm = msg.(timerMsg)
	case <-time.After(time.Second):
		t.Fatal("Timeout: timer message was not posted")
	}

	if !timer.Stop() {
		t.Error("First Stop should report true")
	}
	if timer.Stop() {
		t.Error("Second Stop should report false")
	}
	tm.timer.fire()
	if fired {
		t.Error("Stopped timer must not run its callback")
	}
}

func TestTeaSchedulerStopBeforeDue(t *testing.T) {
	msgs := make(chan tea.Msg, 1)
	s := newScheduler()
	s.bind(func(msg tea.Msg) { msgs <- msg })

	timer := s.AfterFunc(50*time.Millisecond, func() {})
	timer.Stop()

	select {
	case msg := <-msgs:
		t.Fatalf("Stopped timer posted %T", msg)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestTeaSchedulerUnbound(t *testing.T) {
	s := newScheduler()
	// No program yet: the message is dropped instead of panicking
	s.post(timerMsg{})
}
