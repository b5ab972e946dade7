package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	// Get config snapshot for rendering
	cfg := m.cfg.Get()

	// Use lipgloss.Color to validate the color input
	color := lipgloss.Color(m.color)
	highlight := lipgloss.NewStyle().Foreground(color)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	// With fit_width the strip shrinks to text that fits, like a
	// variable-length status item
	inner := m.container
	if cfg.UI.FitWidth && m.text != "" && m.layout.textCells > 0 && m.layout.textCells < inner {
		inner = m.layout.textCells
	}

	var line string
	if m.text == "" {
		line = mutedStyle.Render(visibleWindow("Nothing playing", 0, inner))
	} else {
		shift := int(math.Round(-m.track.Offset(m.now())))
		line = highlight.Render(visibleWindow(m.text, shift, inner))
	}

	stripStyle := lipgloss.NewStyle().Padding(0, 1)
	if cfg.UI.Border {
		stripStyle = stripStyle.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color)
	}
	strip := stripStyle.Render(line)

	var footer string
	switch {
	case m.lastError != nil:
		footer = errorStyle.Render("Error: " + m.lastError.Error())
	case m.notice != "":
		footer = dimStyle.Render(m.notice)
	case m.showHelp:
		state := m.engine.Phase().String()
		if m.stopped {
			state = "stopped"
		}
		footer = lipgloss.JoinVertical(
			lipgloss.Center,
			lipgloss.JoinHorizontal(
				lipgloss.Center,
				"Play/Pause: "+highlight.Render("p"),
				"  Next: "+highlight.Render("n"),
				"  Previous: "+highlight.Render("b"),
				"  Refresh: "+highlight.Render("r"),
			),
			lipgloss.JoinHorizontal(
				lipgloss.Center,
				"Stop/Resume: "+highlight.Render("s"),
				"  Copy: "+highlight.Render("c"),
				"  Quit: "+highlight.Render("q"),
				"  Hide: "+highlight.Render("?"),
			),
			dimStyle.Render(fmt.Sprintf("%d/%d cells · %s", m.layout.textCells, m.container, state)),
		)
	default:
		footer = mutedStyle.Render("Press ? for help")
	}

	fullUI := lipgloss.JoinVertical(lipgloss.Center, strip, "\n"+footer)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		fullUI,
	)
}
