//go:build darwin
// +build darwin

package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// AppleScriptController implements MediaController using AppleScript for macOS
// It follows Spotify or Apple Music depending on source.player
type AppleScriptController struct {
	cfg    *SafeConfig
	logger *zap.Logger
}

// NewMediaController creates a new media controller for the current platform
func NewMediaController(cfg *SafeConfig, logger *zap.Logger) MediaController {
	return &AppleScriptController{cfg: cfg, logger: logger}
}

// application returns the scriptable application name for the configured player
func (a *AppleScriptController) application() string {
	if strings.EqualFold(a.cfg.Get().Source.Player, "music") {
		return "Music"
	}
	return "Spotify"
}

func (a *AppleScriptController) runAppleScript(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("osascript failed: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}

func (a *AppleScriptController) NowPlaying(ctx context.Context) (NowPlaying, error) {
	app := a.application()
	// Returns "title||artist", or "" when the player is closed or not playing
	script := fmt.Sprintf(`
		tell application "System Events"
			set isRunning to (exists (processes where name is "%[1]s"))
		end tell
		if not isRunning then
			return ""
		end if
		tell application "%[1]s"
			if player state is playing then
				set t to name of current track
				set a to artist of current track
				return t & "%[2]s" & a
			else
				return ""
			end if
		end tell`, app, trackSeparator)

	output, err := a.runAppleScript(ctx, script)
	if err != nil {
		a.logger.Debug("Now-playing query failed", zap.String("player", app), zap.Error(err))
		return NowPlaying{}, err
	}
	return parseAppleScriptOutput(output)
}

func (a *AppleScriptController) Control(ctx context.Context, command string) error {
	app := a.application()

	var verb string
	switch command {
	case cmdPlayPause:
		verb = "playpause"
	case cmdNext:
		verb = "next track"
	case cmdPrevious:
		verb = "previous track"
	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	_, err := a.runAppleScript(ctx, fmt.Sprintf(`tell application "%s" to %s`, app, verb))
	return err
}
