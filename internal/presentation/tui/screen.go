package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/muesli/termenv"
)

// Screen is a single-line terminal display. Stimuli created from it add
// themselves to the current frame when drawn; Flip prints the frame when it
// differs from the previous one and then waits for the next refresh.
type Screen struct {
	out     *termenv.Output
	display ports.Display

	frame []string
	last  string
}

// NewScreen creates a screen writing to w and paced by display.
func NewScreen(w io.Writer, display ports.Display) *Screen {
	return &Screen{out: termenv.NewOutput(w), display: display}
}

// Flip implements ports.Display.
func (s *Screen) Flip(ctx context.Context) error {
	line := strings.Join(s.frame, "  ")
	s.frame = s.frame[:0]
	if line != s.last {
		s.last = line
		s.out.ClearLine()
		fmt.Fprint(s.out, "\r"+line)
	}
	return s.display.Flip(ctx)
}

// Close moves the cursor past the last frame.
func (s *Screen) Close() error {
	_, err := fmt.Fprint(s.out, "\r\n")
	return err
}

func (s *Screen) add(text string) {
	s.frame = append(s.frame, text)
}

func (s *Screen) styled(text, color string) string {
	if color == "" {
		return text
	}
	if code, ok := colorNames[strings.ToLower(color)]; ok {
		color = code
	}
	return s.out.String(text).Foreground(s.out.Color(color)).String()
}

// colorNames maps the basic color names of settings files to ANSI codes.
var colorNames = map[string]string{
	"black":   "0",
	"red":     "9",
	"green":   "10",
	"yellow":  "11",
	"blue":    "12",
	"magenta": "13",
	"cyan":    "14",
	"white":   "15",
	"gray":    "8",
	"grey":    "8",
}

// Text is a static text stimulus.
type Text struct {
	screen *Screen
	text   string
}

// Text creates a text stimulus in the given color (hex or ANSI name).
func (s *Screen) Text(text, color string) *Text {
	return &Text{screen: s, text: s.styled(text, color)}
}

func (t *Text) Draw() {
	t.screen.add(t.text)
}

// Dot is a movable stimulus that prints its position.
type Dot struct {
	screen *Screen
	glyph  string
	pos    domain.Point
}

// Dot creates a movable dot stimulus.
func (s *Screen) Dot(color string) *Dot {
	return &Dot{screen: s, glyph: s.styled("●", color)}
}

func (d *Dot) SetPos(p domain.Point) {
	d.pos = p
}

func (d *Dot) Draw() {
	d.screen.add(fmt.Sprintf("%s (%6.2f, %6.2f)", d.glyph, d.pos.X, d.pos.Y))
}
