// Package terminal adapts a plain terminal to the presentation ports: a raw
// keyboard trigger source, a wall clock and a refresh pacer.
package terminal
