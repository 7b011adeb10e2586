package domain

// Default keys used by the bracketing trials.
const (
	// DefaultTriggerKey is the key sent by the scanner on every volume acquisition.
	DefaultTriggerKey = "t"

	// DefaultSkipKey ends the outro phase early.
	DefaultSkipKey = "space"

	// KeyEscape is the canonical name of the escape key.
	KeyEscape = "escape"
)

// DefaultAbortKeys stop the whole experiment immediately.
var DefaultAbortKeys = []string{"q", KeyEscape}
