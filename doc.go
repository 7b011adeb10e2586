/*
Package cadence is a trial timing and scheduling engine for block-design and
moving-stimulus behavioral experiments.

It separates planning from presentation. Planning turns the settings of an
experiment into an immutable timeline: the trial order, the sampled
inter-trial intervals and the padded outro that makes the run last exactly the
intended duration. Presentation walks the timeline one display refresh at a
time, advancing each trial through its phases on elapsed time or on trigger
keys, while the host supplies the clock, the display and the stimuli.

# Usage

	exp, err := cadence.New(config.Default(), "RL", cadence.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}

	tl, err := exp.Plan()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tl.Schedule.Total)

	// The host owns the I/O.
	err = exp.Run(ctx,
		runner.WithClock(clock),
		runner.WithDisplay(display),
		runner.WithTriggers(keyboard),
		runner.WithRegistry(stimuli),
		runner.WithEventLog(memory.NewEventLog(), cadence.RunID("01", "1", "1", "RL")),
	)

Hosts that own their render loop use runner.Session and call Step once per
refresh instead of Run.
*/
package cadence
