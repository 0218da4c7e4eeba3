package shared

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGenerator struct {
	calls atomic.Int64
	inner IDGenerator
}

func (g *countingGenerator) NewID() (uuid.UUID, error) {
	g.calls.Add(1)
	return g.inner.NewID()
}

type failingGenerator struct{}

func (failingGenerator) NewID() (uuid.UUID, error) {
	return uuid.Nil, errors.New("entropy exhausted")
}

func TestNewID(t *testing.T) {
	t.Run("returns version 7 identifiers", func(t *testing.T) {
		id := NewID()
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.Equal(t, uuid.RFC4122, id.Variant())
	})

	t.Run("successive identifiers sort after earlier ones", func(t *testing.T) {
		prev := NewID()
		for i := 0; i < 1000; i++ {
			next := NewID()
			require.Equal(t, 1, CompareIDs(next, prev), "id %d did not sort after its predecessor", i)
			prev = next
		}
	})

	t.Run("panics when the generator fails", func(t *testing.T) {
		restore := UseIDGenerator(failingGenerator{})
		defer restore()

		assert.Panics(t, func() { NewID() })
	})
}

func TestNewID_Concurrent(t *testing.T) {
	const workers = 16
	const total = 10000

	results := make([][]uuid.UUID, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			local := make([]uuid.UUID, 0, total/workers+1)
			for i := w; i < total; i += workers {
				local = append(local, NewID())
			}
			results[w] = local
		}(w)
	}
	wg.Wait()

	seen := make(map[uuid.UUID]struct{}, total)
	all := make([]uuid.UUID, 0, total)
	for _, local := range results {
		for i := 1; i < len(local); i++ {
			assert.Equal(t, 1, CompareIDs(local[i], local[i-1]), "ids issued to one goroutine must increase")
		}
		for _, id := range local {
			seen[id] = struct{}{}
			all = append(all, id)
		}
	}
	assert.Len(t, seen, total)

	sort.Slice(all, func(i, j int) bool { return CompareIDs(all[i], all[j]) < 0 })
	for i := 1; i < len(all); i++ {
		require.NotEqual(t, all[i-1], all[i])
	}
}

func TestCheckIdentitySource(t *testing.T) {
	t.Run("healthy source", func(t *testing.T) {
		assert.NoError(t, CheckIdentitySource())
	})

	t.Run("failing source", func(t *testing.T) {
		restore := UseIDGenerator(failingGenerator{})
		defer restore()

		err := CheckIdentitySource()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entropy exhausted")
	})
}

func TestUseIDGenerator(t *testing.T) {
	gen := &countingGenerator{inner: UUIDv7Generator{}}
	restore := UseIDGenerator(gen)

	NewID()
	NewID()
	assert.Equal(t, int64(2), gen.calls.Load())

	restore()
	NewID()
	assert.Equal(t, int64(2), gen.calls.Load())
}
