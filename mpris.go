package main

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	mprisPrefix      = "org.mpris.MediaPlayer2."
	mprisPath        = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
	propertiesGet    = "org.freedesktop.DBus.Properties.Get"
)

// mprisBusName maps a configured player to its well-known bus name
func mprisBusName(player string) string {
	player = strings.TrimSpace(player)
	if strings.HasPrefix(player, mprisPrefix) {
		return player
	}
	return mprisPrefix + strings.ToLower(player)
}

// mprisMethod returns the Player method for a playback command
func mprisMethod(command string) (string, error) {
	switch command {
	case cmdPlayPause:
		return mprisPlayerIface + ".PlayPause", nil
	case cmdNext:
		return mprisPlayerIface + ".Next", nil
	case cmdPrevious:
		return mprisPlayerIface + ".Previous", nil
	default:
		return "", fmt.Errorf("unknown command: %s", command)
	}
}

// parseMPRISMetadata extracts the track from PlaybackStatus and Metadata.
// Only a playing player counts, like the AppleScript path.
func parseMPRISMetadata(status dbus.Variant, metadata dbus.Variant) (NowPlaying, error) {
	state, ok := status.Value().(string)
	if !ok {
		return NowPlaying{}, fmt.Errorf("unexpected PlaybackStatus type %s", status.Signature())
	}
	if state != "Playing" {
		return NowPlaying{}, ErrNothingPlaying
	}

	meta, ok := metadata.Value().(map[string]dbus.Variant)
	if !ok {
		return NowPlaying{}, fmt.Errorf("unexpected Metadata type %s", metadata.Signature())
	}

	var np NowPlaying
	if v, ok := meta["xesam:title"]; ok {
		np.Title, _ = v.Value().(string)
	}
	if v, ok := meta["xesam:artist"]; ok {
		switch artist := v.Value().(type) {
		case []string:
			if len(artist) > 0 {
				np.Artist = artist[0]
			}
		case string:
			np.Artist = artist
		}
	}

	np.Title = strings.TrimSpace(np.Title)
	np.Artist = strings.TrimSpace(np.Artist)
	if np.Title == "" && np.Artist == "" {
		return NowPlaying{}, ErrNothingPlaying
	}
	return np, nil
}
