package terminal_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/cadence/internal/adapters/terminal"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock float64

func (c fixedClock) Now() float64 { return float64(c) }

func TestKeyName(t *testing.T) {
	tests := map[rune]string{
		'T':    "t",
		'5':    "5",
		' ':    "space",
		'\r':   "return",
		0x1b:   domain.KeyEscape,
		0x03:   domain.KeyEscape,
		0x07:   "",
		'�': "",
	}
	for r, want := range tests {
		assert.Equal(t, want, terminal.KeyName(r), "rune %q", r)
	}
}

func TestKeyboard_Poll(t *testing.T) {
	// "t", an arrow key sequence, a bell and a space.
	input := "t\x1b[A\x07 "
	k, err := terminal.NewKeyboard(strings.NewReader(input), fixedClock(1.5))
	require.NoError(t, err)
	defer k.Close()

	k.Start()
	require.Eventually(t, func() bool { return k.Err() == io.EOF }, time.Second, 5*time.Millisecond)

	events := k.Poll()
	require.Len(t, events, 2)
	assert.Equal(t, domain.TriggerEvent{Key: "t", Timestamp: 1.5}, events[0])
	assert.Equal(t, "space", events[1].Key)

	assert.Empty(t, k.Poll(), "poll drains the queue")
}

func TestKeyboard_CloseStopsPump(t *testing.T) {
	t.Run("file with deadlines", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		k, err := terminal.NewKeyboard(r, fixedClock(0))
		require.NoError(t, err)
		k.Start()
		require.NoError(t, k.Close())

		select {
		case <-k.Done():
		case <-time.After(time.Second):
			t.Fatal("pump still blocked after Close")
		}
		assert.NoError(t, k.Err(), "closing is not an input error")
	})

	t.Run("plain reader", func(t *testing.T) {
		r, w := io.Pipe()
		defer w.Close()

		k, err := terminal.NewKeyboard(r, fixedClock(0))
		require.NoError(t, err)
		k.Start()
		require.NoError(t, k.Close())
		require.NoError(t, k.Close(), "close is idempotent")

		// The pending read returns with the next key, which is dropped.
		go func() { _, _ = io.WriteString(w, "t") }()
		select {
		case <-k.Done():
		case <-time.After(time.Second):
			t.Fatal("pump did not stop after the next key")
		}
		assert.Empty(t, k.Poll())
	})
}

func TestWallClock(t *testing.T) {
	c := terminal.NewWallClock()
	a := c.Now()
	time.Sleep(2 * time.Millisecond)
	b := c.Now()
	assert.GreaterOrEqual(t, a, 0.0)
	assert.Greater(t, b, a)
}

func TestPacer(t *testing.T) {
	p := terminal.NewPacer(200)
	defer p.Stop()
	assert.Equal(t, 5*time.Millisecond, p.Period())

	require.NoError(t, p.Flip(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Either the pending tick or the cancellation may win; a cancelled context
	// must eventually be reported.
	assert.Eventually(t, func() bool { return p.Flip(ctx) != nil }, time.Second, time.Millisecond)
}
