package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEventLog_Contract(t *testing.T) {
	ports.RunEventLogContract(t, memory.NewEventLog())
}

func TestMemoryEventLog_ListIsolation(t *testing.T) {
	ctx := context.Background()
	log := memory.NewEventLog()
	require.NoError(t, log.Append(ctx, "run", domain.Record{Type: domain.EventTrialStart, TrialIndex: 1}))

	records, err := log.List(ctx, "run")
	require.NoError(t, err)
	records[0].TrialIndex = 99

	again, err := log.List(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].TrialIndex, "mutating the returned slice must not leak into the log")
}

func TestMemoryEventLog_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	log := memory.NewEventLog()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = log.Append(ctx, "run", domain.Record{Type: domain.EventTrigger, TrialIndex: i})
		}(i)
	}
	wg.Wait()

	records, err := log.List(ctx, "run")
	require.NoError(t, err)
	assert.Len(t, records, 50)
}
