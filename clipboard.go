package main

import (
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// copyToClipboard asks the terminal to put text on the system clipboard
// with an OSC 52 sequence, wrapped for tmux or screen when needed
func copyToClipboard(w io.Writer, text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}
