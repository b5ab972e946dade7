package main

import (
	"context"
	"errors"
	"strings"
)

// ErrNothingPlaying is returned when the player is closed, paused or stopped
var ErrNothingPlaying = errors.New("nothing playing")

// Playback commands understood by every MediaController
const (
	cmdPlayPause = "play-pause"
	cmdNext      = "next"
	cmdPrevious  = "previous"
)

// NowPlaying is the track a player reports
type NowPlaying struct {
	Title  string
	Artist string
}

// MediaController defines the interface for reading and controlling the
// current player across platforms
//
//go:generate mockgen -source=media.go -destination=mock_media_test.go -package=main
type MediaController interface {
	// NowPlaying returns the playing track or ErrNothingPlaying
	NowPlaying(ctx context.Context) (NowPlaying, error)
	// Control sends play-pause, next or previous to the player
	Control(ctx context.Context, command string) error
}

// trackSeparator splits title and artist in the AppleScript reply
const trackSeparator = "||"

// parseAppleScriptOutput parses "title||artist"; an empty reply means the
// player is not running or not playing
func parseAppleScriptOutput(out string) (NowPlaying, error) {
	out = strings.TrimSpace(out)
	if out == "" {
		return NowPlaying{}, ErrNothingPlaying
	}
	title, artist, _ := strings.Cut(out, trackSeparator)
	np := NowPlaying{
		Title:  strings.TrimSpace(title),
		Artist: strings.TrimSpace(artist),
	}
	if np.Title == "" && np.Artist == "" {
		return NowPlaying{}, ErrNothingPlaying
	}
	return np, nil
}
