package objectid

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestGenerator_Layout(t *testing.T) {
	ts := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	g := NewGenerator()
	g.now = fixedClock(ts)

	first := g.Generate()
	second := g.Generate()

	disc := g.Discriminator()
	require.Equal(t, ts, first.Timestamp())
	require.Equal(t, disc[:], first[4:9])
	require.Equal(t, disc[:], second[4:9])
	require.Equal(t, (first.Counter()+1)&counterMask, second.Counter())
}

func TestGenerator_CounterWraps(t *testing.T) {
	g := NewGenerator()
	g.now = fixedClock(time.Unix(1_700_000_000, 0))
	g.counter.Store(counterMask - 1)

	require.Equal(t, uint32(counterMask), g.Generate().Counter())
	require.Equal(t, uint32(0), g.Generate().Counter())
	require.Equal(t, uint32(1), g.Generate().Counter())
}

func TestGenerator_DistinctDiscriminators(t *testing.T) {
	a := NewGenerator()
	b := NewGenerator()
	require.NotEqual(t, a.Discriminator(), b.Discriminator())
}

func TestGenerator_ConcurrentUniqueness(t *testing.T) {
	const (
		workers   = 8
		perWorker = 25_000
	)

	g := NewGenerator()
	results := make([][]ObjectID, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]ObjectID, perWorker)
			for i := range ids {
				ids[i] = g.Generate()
			}
			results[w] = ids
		}()
	}
	wg.Wait()

	seen := make(map[ObjectID]struct{}, workers*perWorker)
	for _, ids := range results {
		for _, id := range ids {
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %s", id.Hex())
			seen[id] = struct{}{}
		}
	}
	require.Len(t, seen, workers*perWorker)
}

func TestNew_UsesDefaultGenerator(t *testing.T) {
	a := New()
	b := New()

	require.NotEqual(t, a, b)
	require.Equal(t, a[4:9], b[4:9])
	require.WithinDuration(t, time.Now(), a.Timestamp(), 5*time.Second)
}
