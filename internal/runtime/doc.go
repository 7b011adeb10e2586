/*
Package runtime implements the per-trial phase state machine.

A Machine owns the transient state of one trial: the active phase, when it
started, how many frames it has shown and, for moving stimuli, the trajectory
cursor. The runner ticks it once per display refresh with the clock reading
and the trigger events observed since the previous tick.
*/
package runtime
