package main

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestParseAppleScriptOutput(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    NowPlaying
		wantErr error
	}{
		{"title and artist", "Bohemian Rhapsody||Queen", NowPlaying{Title: "Bohemian Rhapsody", Artist: "Queen"}, nil},
		{"trailing newline", "Song||Artist\n", NowPlaying{Title: "Song", Artist: "Artist"}, nil},
		{"empty artist", "Song||", NowPlaying{Title: "Song"}, nil},
		{"no separator", "Song", NowPlaying{Title: "Song"}, nil},
		{"separator in artist", "Song||A||B", NowPlaying{Title: "Song", Artist: "A||B"}, nil},
		{"not running", "", NowPlaying{}, ErrNothingPlaying},
		{"only whitespace", " \n", NowPlaying{}, ErrNothingPlaying},
		{"only separator", "||", NowPlaying{}, ErrNothingPlaying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAppleScriptOutput(tt.output)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseAppleScriptOutput(%q) error = %v; want %v", tt.output, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseAppleScriptOutput(%q) = %+v; want %+v", tt.output, got, tt.want)
			}
		})
	}
}

func TestMprisBusName(t *testing.T) {
	tests := []struct {
		player string
		want   string
	}{
		{"spotify", "org.mpris.MediaPlayer2.spotify"},
		{"Spotify", "org.mpris.MediaPlayer2.spotify"},
		{" vlc ", "org.mpris.MediaPlayer2.vlc"},
		{"org.mpris.MediaPlayer2.firefox.instance123", "org.mpris.MediaPlayer2.firefox.instance123"},
	}

	for _, tt := range tests {
		if got := mprisBusName(tt.player); got != tt.want {
			t.Errorf("mprisBusName(%q) = %q; want %q", tt.player, got, tt.want)
		}
	}
}

func TestMprisMethod(t *testing.T) {
	tests := []struct {
		command string
		want    string
		wantErr bool
	}{
		{cmdPlayPause, "org.mpris.MediaPlayer2.Player.PlayPause", false},
		{cmdNext, "org.mpris.MediaPlayer2.Player.Next", false},
		{cmdPrevious, "org.mpris.MediaPlayer2.Player.Previous", false},
		{"shuffle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got, err := mprisMethod(tt.command)
			if (err != nil) != tt.wantErr {
				t.Fatalf("mprisMethod(%q) error = %v; wantErr %v", tt.command, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("mprisMethod(%q) = %q; want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestParseMPRISMetadata(t *testing.T) {
	metadata := func(fields map[string]any) dbus.Variant {
		m := make(map[string]dbus.Variant, len(fields))
		for k, v := range fields {
			m[k] = dbus.MakeVariant(v)
		}
		return dbus.MakeVariant(m)
	}

	tests := []struct {
		name     string
		status   dbus.Variant
		metadata dbus.Variant
		want     NowPlaying
		wantErr  error
		anyErr   bool
	}{
		{
			name:   "playing",
			status: dbus.MakeVariant("Playing"),
			metadata: metadata(map[string]any{
				"xesam:title":  "Stairway to Heaven",
				"xesam:artist": []string{"Led Zeppelin", "Someone Else"},
			}),
			want: NowPlaying{Title: "Stairway to Heaven", Artist: "Led Zeppelin"},
		},
		{
			name:   "artist as plain string",
			status: dbus.MakeVariant("Playing"),
			metadata: metadata(map[string]any{
				"xesam:title":  "Song",
				"xesam:artist": "Band",
			}),
			want: NowPlaying{Title: "Song", Artist: "Band"},
		},
		{
			name:     "no artist",
			status:   dbus.MakeVariant("Playing"),
			metadata: metadata(map[string]any{"xesam:title": "Podcast"}),
			want:     NowPlaying{Title: "Podcast"},
		},
		{
			name:     "paused",
			status:   dbus.MakeVariant("Paused"),
			metadata: metadata(map[string]any{"xesam:title": "Song"}),
			wantErr:  ErrNothingPlaying,
		},
		{
			name:     "stopped",
			status:   dbus.MakeVariant("Stopped"),
			metadata: metadata(map[string]any{}),
			wantErr:  ErrNothingPlaying,
		},
		{
			name:     "empty metadata",
			status:   dbus.MakeVariant("Playing"),
			metadata: metadata(map[string]any{}),
			wantErr:  ErrNothingPlaying,
		},
		{
			name:     "metadata is not a map",
			status:   dbus.MakeVariant("Playing"),
			metadata: dbus.MakeVariant(12345),
			anyErr:   true,
		},
		{
			name:     "status is not a string",
			status:   dbus.MakeVariant(int32(1)),
			metadata: metadata(map[string]any{}),
			anyErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMPRISMetadata(tt.status, tt.metadata)
			switch {
			case tt.anyErr:
				if err == nil {
					t.Fatal("Expected an error")
				}
				if errors.Is(err, ErrNothingPlaying) {
					t.Errorf("Malformed reply should not read as nothing playing: %v", err)
				}
				return
			case !errors.Is(err, tt.wantErr):
				t.Fatalf("error = %v; want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseMPRISMetadata() = %+v; want %+v", got, tt.want)
			}
		})
	}
}
