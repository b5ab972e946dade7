package main

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"nowmarquee/marquee"
)

// stripLayout is shared by every copy of the model so the engine's
// measurement callback can reach it
type stripLayout struct {
	textCells int
}

// engineSlot holds the live engine for teardown outside Update. It is
// replaced together with model.engine on config reload.
type engineSlot struct {
	engine *marquee.Engine
}

// model is the Bubble Tea model for the status strip
type model struct {
	cfg     *SafeConfig
	logger  *zap.Logger
	media   MediaController
	sched   marquee.Scheduler
	fetches *singleflight.Group

	engine *marquee.Engine
	track  *marquee.Track
	layout *stripLayout
	slot   *engineSlot
	now    func() time.Time

	// Settings the current engine was built with
	speed   float64
	epsilon float64

	text      string // formatted now-playing text handed to the engine
	container int    // cells available to the text
	width     int
	height    int
	color     string
	lastError error
	stopped   bool // marquee stopped with "s"
	showHelp  bool
	notice    string
}

// UI refresh tick - repaints the strip so the scroll looks smooth
type tickMsg time.Time

// Data fetch tick - polls the player
type fetchMsg time.Time

// Result of asking the player what is playing
type nowPlayingMsg struct {
	track NowPlaying
	err   error
}

// Result of a playback command
type controlMsg struct {
	command string
	err     error
}

// Result of a clipboard copy
type copiedMsg struct {
	err error
}

func newModel(cfg *SafeConfig, logger *zap.Logger, media MediaController, sched *teaScheduler) model {
	return buildModel(cfg, logger, media, sched, time.Now)
}

func buildModel(cfg *SafeConfig, logger *zap.Logger, media MediaController, sched marquee.Scheduler, now func() time.Time) model {
	c := cfg.Get()
	m := model{
		cfg:     cfg,
		logger:  logger,
		media:   media,
		sched:   sched,
		fetches: &singleflight.Group{},
		track:   marquee.NewTrack(now),
		layout:  &stripLayout{},
		slot:    &engineSlot{},
		now:     now,
		color:   c.UI.Color,
	}
	m.engine = m.newEngine(c)
	m.container = m.containerWidth()
	return m
}

// newEngine builds a marquee engine measuring in terminal cells
func (m *model) newEngine(c Config) *marquee.Engine {
	m.speed = c.Marquee.Speed
	m.epsilon = c.Marquee.Epsilon
	layout := m.layout
	e := marquee.New(m.track, m.sched,
		marquee.WithMeasurer(marquee.CellMeasurer{}),
		marquee.WithSpeed(c.Marquee.Speed),
		marquee.WithEpsilon(c.Marquee.Epsilon),
		marquee.WithDelays(ms(c.Marquee.StartDelayMs), ms(c.Marquee.EndDelayMs)),
		marquee.WithLogger(m.logger.Named("marquee")),
		marquee.WithMeasuredFunc(func(w float64) {
			layout.textCells = int(w)
		}),
	)
	m.slot.engine = e
	return e
}

// closeEngine tears down the live engine. Call it only once Update can no
// longer run.
func (m model) closeEngine() {
	if m.slot.engine != nil {
		m.slot.engine.Close()
	}
}

// frameWidth is the number of cells taken by padding and border
func frameWidth(c Config) int {
	if c.UI.Border {
		return 4
	}
	return 2
}

// containerWidth clamps the configured width to the terminal
func (m model) containerWidth() int {
	c := m.cfg.Get()
	w := c.UI.Width
	if m.width > 0 {
		w = min(w, m.width-frameWidth(c))
	}
	return max(w, 0)
}

// applyText hands the current text and width to the engine
func (m *model) applyText() {
	m.container = m.containerWidth()
	if m.stopped {
		m.layout.textCells = marquee.Cells(m.text)
		return
	}
	m.engine.SetText(m.text, float64(m.container), marquee.Font{})
}

// Schedule next UI refresh tick
func tickCmd(c Config) tea.Cmd {
	return tea.Tick(ms(c.Timing.UIRefreshMs), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Schedule next player poll
func fetchCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return fetchMsg(t)
	})
}

// Fetch now-playing in background (doesn't block UI). Overlapping fetches
// share one player query.
func (m model) fetchNowPlaying() tea.Cmd {
	timeout := ms(m.cfg.Get().Timing.FetchTimeoutMs)
	media, fetches := m.media, m.fetches
	return func() tea.Msg {
		v, err, _ := fetches.Do("now-playing", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return media.NowPlaying(ctx)
		})
		if err != nil {
			return nowPlayingMsg{err: err}
		}
		return nowPlayingMsg{track: v.(NowPlaying)}
	}
}

// Send a playback command in background
func (m model) controlCmd(command string) tea.Cmd {
	timeout := ms(m.cfg.Get().Timing.FetchTimeoutMs)
	media := m.media
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return controlMsg{command: command, err: media.Control(ctx, command)}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: copyToClipboard(os.Stderr, text)}
	}
}

func (m model) Init() tea.Cmd {
	c := m.cfg.Get()
	return tea.Batch(
		tickCmd(c),
		fetchCmd(ms(c.Timing.PollInitialDelayMs)),
		m.cfg.watchCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""
		switch msg.String() {
		case "q", "ctrl+c":
			m.engine.Close()
			return m, tea.Quit
		case "p":
			return m, m.controlCmd(cmdPlayPause)
		case "n":
			return m, m.controlCmd(cmdNext)
		case "b":
			return m, m.controlCmd(cmdPrevious)
		case "r":
			return m, m.fetchNowPlaying()
		case "s":
			// Toggle the marquee
			m.stopped = !m.stopped
			if m.stopped {
				m.engine.Stop()
			} else {
				m.applyText()
			}
			return m, nil
		case "c":
			if m.text == "" {
				return m, nil
			}
			return m, copyCmd(m.text)
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.containerWidth() != m.container {
			m.applyText()
		}

	case timerMsg:
		msg.timer.fire()
		return m, nil

	case tickMsg:
		return m, tickCmd(m.cfg.Get())

	case fetchMsg:
		return m, tea.Batch(
			fetchCmd(ms(m.cfg.Get().Timing.PollMs)),
			m.fetchNowPlaying(),
		)

	case nowPlayingMsg:
		if msg.err != nil && !errors.Is(msg.err, ErrNothingPlaying) {
			// Keep showing the last track
			if m.lastError == nil {
				m.logger.Warn("Failed to read now playing", zap.Error(msg.err))
			}
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil

		text := ""
		if msg.err == nil {
			text = formatNowPlaying(msg.track)
		}
		// The poller repeats the same track; only a change restarts the cycle.
		// The engine would reach the same state from a repeated SetText.
		if text != m.text {
			m.logger.Info("Now playing changed", zap.String("text", text))
			m.text = text
			m.applyText()
		}
		return m, nil

	case controlMsg:
		if msg.err != nil {
			m.logger.Warn("Playback command failed",
				zap.String("command", msg.command),
				zap.Error(msg.err))
			m.lastError = msg.err
			return m, nil
		}
		// Immediately fetch fresh state after control action
		return m, m.fetchNowPlaying()

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("Clipboard copy failed", zap.Error(msg.err))
			m.notice = "Copy failed"
		} else {
			m.notice = "Copied"
		}
		return m, nil

	case configReloadMsg:
		c := m.cfg.Get()
		m.color = c.UI.Color
		if c.Marquee.Speed != m.speed || c.Marquee.Epsilon != m.epsilon {
			// Speed is fixed per engine, so start over with a new one
			m.engine.Close()
			m.engine = m.newEngine(c)
			m.applyText()
		} else {
			m.engine.ConfigureDelays(ms(c.Marquee.StartDelayMs), ms(c.Marquee.EndDelayMs))
			if m.containerWidth() != m.container {
				m.applyText()
			}
		}
		// Continue watching for more config changes
		return m, m.cfg.watchCmd()
	}

	return m, nil
}
