package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Green to teal, the colors of an unlocked path.
	lines := []struct{ text, color string }{
		{"        _     _ _ _ _               ", "#4ade80"},
		{"   __ _| |__ (_) (_) |_ _ __ ___  ___", "#34d399"},
		{"  / _` | '_ \\| | | | __| '__/ _ \\/ _ \\", "#2dd4bf"},
		{" | (_| | |_) | | | | |_| | |  __/  __/", "#22d3ee"},
		{"  \\__,_|_.__/|_|_|_|\\__|_|  \\___|\\___|", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
