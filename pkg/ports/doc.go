/*
Package ports defines the driven ports (interfaces) of the Cadence engine.

These interfaces decouple the timing core from the presentation environment,
so the same timeline can be driven by a real display, a terminal or a test
harness.

# Key Interfaces

  - Clock: Monotonic experiment time in seconds.
  - TriggerSource: Key and scanner-pulse events observed since the previous tick.
  - Display: Blocks until the next display refresh.
  - Drawable / Positioner: Stimuli rendered by the host.
  - EventLog: Persists trial and phase records for later analysis.
*/
package ports
