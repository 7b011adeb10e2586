/*
Package runner implements the presentation loop of a Cadence timeline.

It is the bridge between the per-trial phase machines and the outside world:
the runner reads the clock, polls the trigger source, advances the active
trial, draws its stimuli through a Registry and paces itself on the display
refresh. Everything happens on the calling goroutine.

# Key Components

  - Runner: Owns the loop. Stops on completion, on an abort key or when the context is cancelled.
  - Session: Single-step API for hosts that own the loop themselves.
  - Registry: Explicit mapping from conditions to stimuli.
  - Behavior: Per trial kind drawing strategy.

# Usage

	r := runner.New(
		runner.WithClock(clock),
		runner.WithDisplay(display),
		runner.WithTriggers(keyboard),
		runner.WithRegistry(registry),
		runner.WithEventLog(log, "sub-01_ses-1_run-1_task-RL"),
	)

	if err := r.Run(ctx, timeline); err != nil {
		log.Fatal(err)
	}
*/
package runner
