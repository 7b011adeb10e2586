/*
Package domain contains the core domain models of the Cadence trial engine.

It defines the vocabulary shared by every other package: conditions, phases,
trials and the timeline that bundles them, together with the execution state
of a running trial and the events emitted while it runs. This package is kept
pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Condition: The experimental manipulation applied to a trial (right, left, saccade...).
  - Phase: A named, timed segment of a trial (seconds, frames or unbounded).
  - Trial: An ordered list of phases plus an optional moving-stimulus trajectory.
  - Timeline: The immutable, fully planned experiment (wait trial, content trials, outro).
  - State: A runtime snapshot of the trial currently being presented.
*/
package domain
