// Package testutils holds simulated presentation devices for tests.
package testutils

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// Clock is a ports.Clock that only moves when its Display flips.
type Clock struct {
	T float64
}

func (c *Clock) Now() float64 { return c.T }

// Display advances its clock by Frame seconds per flip.
type Display struct {
	Clock *Clock
	Frame float64
	Flips int
	Err   error
}

// NewDisplay creates a display and its clock, starting at zero.
func NewDisplay(frame float64) (*Display, *Clock) {
	c := &Clock{}
	return &Display{Clock: c, Frame: frame}, c
}

func (d *Display) Flip(ctx context.Context) error {
	if d.Err != nil {
		return d.Err
	}
	d.Flips++
	d.Clock.T += d.Frame
	return nil
}

// Triggers returns the keys scripted for each poll, counted from 1.
// Events are stamped with the clock time of the poll.
type Triggers struct {
	Clock  *Clock
	Script map[int][]string
	Polls  int
}

func (s *Triggers) Poll() []domain.TriggerEvent {
	s.Polls++
	var out []domain.TriggerEvent
	for _, k := range s.Script[s.Polls] {
		ev := domain.TriggerEvent{Key: k}
		if s.Clock != nil {
			ev.Timestamp = s.Clock.T
		}
		out = append(out, ev)
	}
	return out
}
