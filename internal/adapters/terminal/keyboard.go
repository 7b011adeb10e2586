package terminal

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"golang.org/x/term"
)

// Keyboard is a ports.TriggerSource reading key presses from a terminal.
//
// A background pump reads the input one rune at a time and stamps every key
// with the experiment clock; Poll drains what arrived since the previous tick.
type Keyboard struct {
	reader *bufio.Reader
	clock  ports.Clock
	logger *slog.Logger
	// file is set when the input is an *os.File, so Close can expire a
	// pending read.
	file *os.File

	mu      sync.Mutex
	pending []domain.TriggerEvent
	err     error

	restore   func() error
	started   bool
	startOnce sync.Once
	closeOnce sync.Once
	closing   chan struct{}
	stopped   chan struct{}
}

// KeyboardOption configures a Keyboard.
type KeyboardOption func(*Keyboard)

// WithKeyboardLogger sets the logger used by the pump.
func WithKeyboardLogger(logger *slog.Logger) KeyboardOption {
	return func(k *Keyboard) {
		k.logger = logger
	}
}

// NewKeyboard creates a trigger source over r.
// If r is a terminal it is switched to raw mode so single keys arrive without
// Enter; Close restores it.
func NewKeyboard(r io.Reader, clock ports.Clock, opts ...KeyboardOption) (*Keyboard, error) {
	if r == nil {
		r = os.Stdin
	}
	k := &Keyboard{
		reader:  bufio.NewReader(r),
		clock:   clock,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		restore: func() error { return nil },
		closing: make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(k)
	}

	f, ok := r.(*os.File)
	if ok {
		k.file = f
	}
	if ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		k.restore = func() error { return term.Restore(fd, state) }
	}
	return k, nil
}

// Start launches the input pump. It is safe to call more than once.
func (k *Keyboard) Start() {
	k.startOnce.Do(func() {
		k.mu.Lock()
		k.started = true
		k.mu.Unlock()
		go k.pump()
	})
}

// Done is closed once the pump has stopped.
func (k *Keyboard) Done() <-chan struct{} {
	return k.stopped
}

func (k *Keyboard) isClosing() bool {
	select {
	case <-k.closing:
		return true
	default:
		return false
	}
}

func (k *Keyboard) pump() {
	defer close(k.stopped)
	for {
		r, _, err := k.reader.ReadRune()
		if k.isClosing() {
			if k.file != nil {
				_ = k.file.SetReadDeadline(time.Time{})
			}
			return
		}
		if err != nil {
			k.mu.Lock()
			k.err = err
			k.mu.Unlock()
			if err != io.EOF {
				k.logger.Warn("keyboard input stopped", "error", err)
			}
			return
		}

		// Escape sequences (arrows, function keys) arrive in one burst.
		if r == keyEsc && k.reader.Buffered() > 0 {
			k.discardSequence()
			continue
		}

		name := KeyName(r)
		if name == "" {
			continue
		}
		ev := domain.TriggerEvent{Key: name, Timestamp: k.clock.Now()}
		k.mu.Lock()
		k.pending = append(k.pending, ev)
		k.mu.Unlock()
	}
}

// discardSequence consumes a CSI or SS3 sequence up to its final byte.
func (k *Keyboard) discardSequence() {
	r, _, err := k.reader.ReadRune()
	if err != nil || (r != '[' && r != 'O') {
		return
	}
	for k.reader.Buffered() > 0 {
		r, _, err := k.reader.ReadRune()
		if err != nil || (r >= 0x40 && r <= 0x7e) {
			return
		}
	}
}

// Poll returns the keys pressed since the previous call.
func (k *Keyboard) Poll() []domain.TriggerEvent {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := k.pending
	k.pending = nil
	return out
}

// Err returns the error that stopped the pump, if any.
func (k *Keyboard) Err() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.err
}

// Close stops the pump and restores the terminal state.
//
// A read blocked on a file with deadline support, such as a pipe, returns at
// once. Otherwise (a blocking os.Stdin) the pump exits at the next key press,
// which is discarded.
func (k *Keyboard) Close() error {
	var err error
	k.closeOnce.Do(func() {
		close(k.closing)
		k.mu.Lock()
		started := k.started
		k.mu.Unlock()
		if started && k.file != nil {
			_ = k.file.SetReadDeadline(time.Now())
		}
		err = k.restore()
	})
	return err
}
