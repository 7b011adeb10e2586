/*
Package sequence builds the immutable Timeline of an experiment.

Building happens once, before presentation starts: ITIs are sampled, the
total duration is reconciled against the intended duration, the condition
order is laid out (and optionally shuffled) and every trial is assembled with
its phases. The leading wait trial and the trailing outro trial are always
added, so content trials are indexed 1..n.

Two task families are supported:

  - Block tasks (motor): each content trial shows a condition for the stimulus
    duration followed by its ITI, optionally ending with a cue.
  - Trajectory tasks (saccade/pursuit): a stimulus travels along a closed path
    through the anchor points, one segment per trial.
*/
package sequence
