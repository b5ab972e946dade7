package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errNotATerminal = errors.New("stdout is not a terminal")

// AppOptions is the dependency graph shared by main and its tests
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		newConfig,
		newLogger,
		NewMediaController,
		newScheduler,
		newModel,
		newProgram,
	),

	// Lifecycle hooks
	fx.Invoke(watchConfig, registerHooks),
)

// newLogger writes JSON logs to log.file. The terminal belongs to the UI,
// so without a file nothing is logged.
func newLogger(cfg *SafeConfig) (*zap.Logger, error) {
	c := cfg.Get()
	if c.Log.File == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{c.Log.File}
	zc.ErrorOutputPaths = []string{c.Log.File}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", c.Log.File, err)
	}
	return logger, nil
}

// newProgram creates the Bubble Tea program and routes marquee timers into it
func newProgram(m model, sched *teaScheduler) (*tea.Program, error) {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, errNotATerminal
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	sched.bind(p.Send)
	return p, nil
}

// registerHooks runs the program for the lifetime of the app. Quitting the
// UI shuts the app down.
func registerHooks(lc fx.Lifecycle, sd fx.Shutdowner, p *tea.Program, m model, logger *zap.Logger) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting nowmarquee")
			go func() {
				defer close(done)
				if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
					logger.Error("UI exited with error", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
					return
				}
				_ = sd.Shutdown()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			p.Quit()
			select {
			case <-done:
			case <-ctx.Done():
				p.Kill()
				<-done
			}
			// The UI loop has exited, so no timer callback can race this
			m.closeEngine()
			// Sync fails on some file types; nothing left to do about it
			_ = logger.Sync()
			return nil
		},
	})
}
