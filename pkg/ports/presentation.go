package ports

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// Clock exposes elapsed experiment time as a monotonic number of seconds.
type Clock interface {
	Now() float64
}

// TriggerSource produces the events observed since the previous call.
// It is polled exactly once per tick.
type TriggerSource interface {
	Poll() []domain.TriggerEvent
}

// Display paces the presentation loop.
type Display interface {
	// Flip presents the frame drawn during the tick and blocks until the next refresh.
	Flip(ctx context.Context) error
}

// Drawable is a stimulus rendered by the host.
type Drawable interface {
	Draw()
}

// Positioner is implemented by stimuli that can be moved.
type Positioner interface {
	SetPos(p domain.Point)
}
