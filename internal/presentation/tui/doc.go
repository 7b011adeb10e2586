// Package tui renders experiments in a terminal: the banner, markdown plans
// and a minimal one-line screen for text and moving stimuli.
package tui
