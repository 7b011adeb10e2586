package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Cadence banner.
func PrintBanner(w io.Writer) {
	o := termenv.NewOutput(w)
	// Teal to blue, one color per line.
	lines := []struct{ text, color string }{
		{"                   _                     ", "#2dd4bf"},
		{"   ___ __ _  __| | ___ _ __   ___ ___ ", "#22d3ee"},
		{"  / __/ _` |/ _` |/ _ \\ '_ \\ / __/ _ \\", "#38bdf8"},
		{" | (_| (_| | (_| |  __/ | | | (_|  __/", "#60a5fa"},
		{"  \\___\\__,_|\\__,_|\\___|_| |_|\\___\\___|", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w)
}
