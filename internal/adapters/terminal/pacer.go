package terminal

import (
	"context"
	"time"
)

// Pacer is a ports.Display without a screen: Flip blocks until the next tick
// of a fixed refresh rate. Presenters wrap it to draw their frame first.
type Pacer struct {
	ticker *time.Ticker
	period time.Duration
}

// NewPacer creates a pacer ticking refreshRate times per second.
func NewPacer(refreshRate float64) *Pacer {
	if refreshRate <= 0 {
		refreshRate = 60
	}
	period := time.Duration(float64(time.Second) / refreshRate)
	return &Pacer{ticker: time.NewTicker(period), period: period}
}

// Period returns the time between two refreshes.
func (p *Pacer) Period() time.Duration {
	return p.period
}

// Flip waits for the next refresh or the context cancellation.
func (p *Pacer) Flip(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

// Stop releases the ticker.
func (p *Pacer) Stop() {
	p.ticker.Stop()
}
