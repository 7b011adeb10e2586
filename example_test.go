package cadence_test

import (
	"fmt"
	"log"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/pkg/config"
)

// ExampleExperiment_Plan plans the short demo run and prints its outline.
func ExampleExperiment_Plan() {
	exp, err := cadence.New(config.Default(), "demo", cadence.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}

	tl, err := exp.Plan()
	if err != nil {
		log.Fatal(err)
	}

	for _, trial := range tl.Trials {
		fmt.Println(trial.Index, trial.Kind, len(trial.Phases))
	}
	fmt.Printf("total %gs\n", tl.Schedule.Total)

	// Output:
	// 0 wait 2
	// 1 block 2
	// 2 block 2
	// 3 outro 1
	// total 12s
}

func ExampleRunID() {
	fmt.Println(cadence.RunID("01", "1", "1", "LR"))
	// Output: sub-01_ses-1_run-1_task-RL
}
