package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupStates(t *testing.T) {
	c := New()

	_, found, seen := c.Lookup("missing")
	assert.False(t, found)
	assert.False(t, seen)

	c.Put("hit", "value")
	v, found, seen := c.Lookup("hit")
	assert.True(t, found)
	assert.True(t, seen)
	assert.Equal(t, "value", v)

	c.PutNegative("miss")
	_, found, seen = c.Lookup("miss")
	assert.False(t, found)
	assert.True(t, seen)

	assert.Equal(t, 2, c.Len())
}

func TestDoCachesSuccess(t *testing.T) {
	c := New()
	var calls atomic.Int32

	fn := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "computed", nil
	}

	v, err := c.Do(context.Background(), "k", fn)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)

	v, err = c.Do(context.Background(), "k", fn)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDoNegativeEntry(t *testing.T) {
	c := New()
	var calls atomic.Int32

	fn := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", nil
	}

	_, err := c.Do(context.Background(), "k", fn)
	assert.ErrorIs(t, err, ErrNegative)

	// Second call short-circuits on the recorded miss.
	_, err = c.Do(context.Background(), "k", fn)
	assert.ErrorIs(t, err, ErrNegative)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDoDoesNotCacheErrors(t *testing.T) {
	c := New()
	var calls atomic.Int32

	boom := eris.New("upstream down")
	fn := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", boom
		}
		return "recovered", nil
	}

	_, err := c.Do(context.Background(), "k", fn)
	require.Error(t, err)

	v, err := c.Do(context.Background(), "k", fn)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestDoSingleFlight(t *testing.T) {
	c := New()
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Do(context.Background(), "k", fn)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}
