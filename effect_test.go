package spark_test

import (
	"errors"
	"fmt"
	"testing"

	spark "github.com/reactivekit/spark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectRunsEagerlyOnCreation(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	count := spark.Signal(rt, 1)
	seen := []int{}
	spark.Effect(rt, func() spark.CleanupFunc {
		seen = append(seen, count.Value())
		return nil
	})

	assert.Equal(t, []int{1}, seen)
	count.SetValue(2)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestEffectStop(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	count := spark.Signal(rt, 1)
	callCount := 0
	stop := spark.Effect(rt, func() spark.CleanupFunc {
		count.Value()
		callCount++
		return nil
	})
	assert.Equal(t, 1, callCount)

	count.SetValue(2)
	assert.Equal(t, 2, callCount)

	stop()
	count.SetValue(3)
	assert.Equal(t, 2, callCount)

	// stop is idempotent
	stop()
	count.SetValue(4)
	assert.Equal(t, 2, callCount)
}

func TestEffectSkipsEqualWrites(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	count := spark.Signal(rt, 1)
	callCount := 0
	spark.Effect(rt, func() spark.CleanupFunc {
		count.Value()
		callCount++
		return nil
	})
	assert.Equal(t, 1, callCount)

	count.SetValue(1)
	assert.Equal(t, 1, callCount)
	count.SetValue(2)
	assert.Equal(t, 2, callCount)
}

func TestEffectDiamondRunsOnce(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	b := spark.Computed(rt, func() int { return a.Value() * 2 })
	c := spark.Computed(rt, func() int { return a.Value() * 3 })

	callCount := 0
	spark.Effect(rt, func() spark.CleanupFunc {
		b.Value()
		c.Value()
		callCount++
		return nil
	})
	assert.Equal(t, 1, callCount)

	a.SetValue(2)
	assert.Equal(t, 2, callCount)
}

func TestBatchCoalescesWrites(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	b := spark.Signal(rt, 10)

	seen := []int{}
	spark.Effect(rt, func() spark.CleanupFunc {
		seen = append(seen, a.Value()+b.Value())
		return nil
	})
	assert.Equal(t, []int{11}, seen)

	rt.Batch(func() {
		a.SetValue(2)
		a.SetValue(3)
		b.SetValue(20)
		// nothing runs until the batch closes
		assert.Equal(t, []int{11}, seen)
	})
	assert.Equal(t, []int{11, 23}, seen)
}

func TestNestedBatchesFlushOnce(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	callCount := 0
	spark.Effect(rt, func() spark.CleanupFunc {
		a.Value()
		callCount++
		return nil
	})
	assert.Equal(t, 1, callCount)

	rt.Batch(func() {
		a.SetValue(2)
		rt.Batch(func() {
			a.SetValue(3)
		})
		// inner batch closing must not flush while the outer is open
		assert.Equal(t, 1, callCount)
		a.SetValue(4)
	})
	assert.Equal(t, 2, callCount)
}

func TestBatchValue(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	got := spark.BatchValue(rt, func() int {
		a.SetValue(5)
		return a.Peek()
	})
	assert.Equal(t, 5, got)
}

func TestEffectCleanupOrdering(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	log := []string{}
	stop := spark.Effect(rt, func() spark.CleanupFunc {
		v := a.Value()
		log = append(log, "body")
		return func() {
			log = append(log, fmt.Sprintf("cleanup after %d", v))
		}
	})
	assert.Equal(t, []string{"body"}, log)

	a.SetValue(2)
	assert.Equal(t, []string{"body", "cleanup after 1", "body"}, log)

	stop()
	assert.Equal(t, []string{"body", "cleanup after 1", "body", "cleanup after 2"}, log)

	a.SetValue(3)
	assert.Equal(t, []string{"body", "cleanup after 1", "body", "cleanup after 2"}, log)
}

func TestEffectCleanupDoesNotTrack(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	b := spark.Signal(rt, 10)
	callCount := 0
	spark.Effect(rt, func() spark.CleanupFunc {
		a.Value()
		callCount++
		return func() {
			// reads inside cleanups never register dependencies
			b.Value()
		}
	})
	assert.Equal(t, 1, callCount)

	a.SetValue(2)
	assert.Equal(t, 2, callCount)
	b.SetValue(20)
	assert.Equal(t, 2, callCount)
}

func TestEffectDynamicDependencies(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	cond := spark.Signal(rt, true)
	x := spark.Signal(rt, 1)
	y := spark.Signal(rt, 100)

	callCount := 0
	spark.Effect(rt, func() spark.CleanupFunc {
		callCount++
		if cond.Value() {
			x.Value()
		} else {
			y.Value()
		}
		return nil
	})
	assert.Equal(t, 1, callCount)

	x.SetValue(2)
	assert.Equal(t, 2, callCount)

	cond.SetValue(false)
	assert.Equal(t, 3, callCount)

	// x is no longer a dependency
	x.SetValue(3)
	assert.Equal(t, 3, callCount)

	y.SetValue(200)
	assert.Equal(t, 4, callCount)
}

func TestEffectPanicIsIsolated(t *testing.T) {
	var caught []error
	rt := spark.New(spark.WithOnError(func(err error) {
		caught = append(caught, err)
	}))
	defer rt.Dispose()

	a := spark.Signal(rt, 1)

	spark.Effect(rt, func() spark.CleanupFunc {
		if a.Value() == 2 {
			panic("boom")
		}
		return nil
	})

	okCount := 0
	spark.Effect(rt, func() spark.CleanupFunc {
		a.Value()
		okCount++
		return nil
	})
	assert.Equal(t, 1, okCount)
	assert.Empty(t, caught)

	a.SetValue(2)
	// the failing effect is reported, the healthy one still ran
	assert.Equal(t, 2, okCount)
	require.Len(t, caught, 1)

	var rerr *spark.RecomputeError
	require.True(t, errors.As(caught[0], &rerr))
	assert.Equal(t, "boom", rerr.Recovered)

	// the failed effect keeps its dependencies and recovers on the next write
	a.SetValue(3)
	assert.Equal(t, 3, okCount)
	assert.Len(t, caught, 1)
}

func TestEffectSelfWriteTerminates(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	c := spark.Signal(rt, 0)
	spark.Effect(rt, func() spark.CleanupFunc {
		v := c.Value()
		if v > 0 && v < 5 {
			c.SetValue(v + 1)
		}
		return nil
	})

	c.SetValue(1)
	assert.Equal(t, 5, c.Peek())
}

func TestRunawayFlushPanics(t *testing.T) {
	rt := spark.New(spark.WithMaxFlushPasses(20))
	defer rt.Dispose()

	c := spark.Signal(rt, 0)
	spark.Effect(rt, func() spark.CleanupFunc {
		v := c.Value()
		if v > 0 {
			c.SetValue(v + 1)
		}
		return nil
	})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		ferr, ok := r.(*spark.RunawayFlushError)
		require.True(t, ok)
		assert.Equal(t, 20, ferr.Passes)
	}()
	c.SetValue(1)
}

func TestWatchReportsPrevious(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	type call struct {
		next int
		prev *int
	}
	calls := []call{}
	spark.Watch(rt, func() int { return a.Value() * 2 }, func(next int, prev *int) {
		calls = append(calls, call{next, prev})
	})

	require.Len(t, calls, 1)
	assert.Equal(t, 2, calls[0].next)
	assert.Nil(t, calls[0].prev)

	a.SetValue(3)
	require.Len(t, calls, 2)
	assert.Equal(t, 6, calls[1].next)
	require.NotNil(t, calls[1].prev)
	assert.Equal(t, 2, *calls[1].prev)
}

func TestWatchSkipsEqualValues(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	callCount := 0
	spark.Watch(rt, func() int { return a.Value() % 2 }, func(next int, prev *int) {
		callCount++
	})
	assert.Equal(t, 1, callCount)

	// parity unchanged, callback stays quiet
	a.SetValue(3)
	assert.Equal(t, 1, callCount)
	a.SetValue(4)
	assert.Equal(t, 2, callCount)
}

func TestWatchCallbackDoesNotTrack(t *testing.T) {
	rt := spark.New()
	defer rt.Dispose()

	a := spark.Signal(rt, 1)
	b := spark.Signal(rt, 10)
	callCount := 0
	spark.Watch(rt, func() int { return a.Value() }, func(next int, prev *int) {
		callCount++
		b.Value()
	})
	assert.Equal(t, 1, callCount)

	b.SetValue(20)
	assert.Equal(t, 1, callCount)
	a.SetValue(2)
	assert.Equal(t, 2, callCount)
}
