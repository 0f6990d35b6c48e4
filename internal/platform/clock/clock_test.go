package clock

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ULIDGen_SameMillisecondSortsInOrder(t *testing.T) {
	gen := ULIDGen{}
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	ids := make([]string, 200)
	for i := range ids {
		ids[i] = gen.NewULID(at)
	}

	assert.True(t, sort.StringsAreSorted(ids))
	for i := 1; i < len(ids); i++ {
		require.NotEqual(t, ids[i-1], ids[i])
	}
}

func Test_ULIDGen_ConcurrentCallsAreUnique(t *testing.T) {
	gen := ULIDGen{}
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := gen.NewULID(at)
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 400)
}

func Test_Fixed(t *testing.T) {
	c := Fixed{T: time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("JST", 9*3600))}

	assert.Equal(t, "2024-03-09", c.Today().String())
	assert.Equal(t, time.UTC, c.Now().Location())
}
