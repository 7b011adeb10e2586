package terminal

import (
	"strings"
	"unicode"

	"github.com/aretw0/cadence/pkg/domain"
)

const (
	keyEsc   = 0x1b
	keyCtrlC = 0x03
)

// KeyName maps a rune read from a raw terminal to the key name used by
// trigger and abort settings. Control characters without a name are dropped
// (empty result) so they never reach logs or the event log.
func KeyName(r rune) string {
	switch r {
	case keyEsc:
		return domain.KeyEscape
	case keyCtrlC:
		// Raw mode swallows SIGINT, so Ctrl+C aborts like escape.
		return domain.KeyEscape
	case ' ':
		return domain.DefaultSkipKey
	case '\r', '\n':
		return "return"
	case '\t':
		return "tab"
	}
	if unicode.IsControl(r) || r == unicode.ReplacementChar {
		return ""
	}
	return strings.ToLower(string(r))
}
