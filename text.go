package main

import (
	"strings"

	"github.com/rivo/uniseg"

	"nowmarquee/marquee"
)

// formatNowPlaying builds the strip text: "♪ title / artist"
func formatNowPlaying(np NowPlaying) string {
	title := collapseSpace(np.Title)
	artist := collapseSpace(np.Artist)

	switch {
	case title == "" && artist == "":
		return ""
	case artist == "":
		return "♪ " + title
	case title == "":
		return "♪ " + artist
	}
	return "♪ " + title + " / " + artist
}

// collapseSpace turns tabs, newlines and runs of spaces into single spaces
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// visibleWindow returns exactly width cells of text starting at cell shift.
// Wide clusters cut by either edge are replaced with spaces.
func visibleWindow(text string, shift, width int) string {
	if width <= 0 {
		return ""
	}
	if shift < 0 {
		shift = 0
	}

	var b strings.Builder
	col, used := 0, 0
	gr := uniseg.NewGraphemes(text)
	for used < width && gr.Next() {
		cluster := gr.Str()
		w := marquee.ClusterCells(cluster)
		switch {
		case w == 0:
			if col >= shift {
				b.WriteString(cluster)
			}
		case col+w <= shift:
			// left of the window
		case col < shift:
			pad := min(col+w-shift, width-used)
			b.WriteString(strings.Repeat(" ", pad))
			used += pad
		case used+w > width:
			b.WriteString(strings.Repeat(" ", width-used))
			used = width
		default:
			b.WriteString(cluster)
			used += w
		}
		col += w
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}
