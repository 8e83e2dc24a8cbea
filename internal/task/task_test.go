package task

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllocatesIncreasingIDs(t *testing.T) {
	a := New(10, "copy a")
	b := New(10, "test")
	assert.Greater(t, b.ID(), a.ID())
	assert.Equal(t, StatusNew, a.Status())
	assert.Equal(t, "copy a", a.Description())
}

func TestIDsUniqueAcrossGoroutines(t *testing.T) {
	const n = 200
	ids := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- New(1, "test").ID()
		}()
	}
	wg.Wait()
	close(ids)
	seen := make(map[uint64]struct{}, n)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
}

func TestIncrementClampsToTotal(t *testing.T) {
	tk := New(100, "test")
	tk.Increment(40)
	assert.Equal(t, StatusInProgress, tk.Status())
	assert.Equal(t, uint64(40), tk.Completed())
	assert.InDelta(t, 0.4, tk.Fraction(), 0.0001)

	tk.Increment(1000)
	assert.Equal(t, uint64(100), tk.Completed())
	assert.True(t, tk.IsComplete())
}

func TestZeroTotalIsComplete(t *testing.T) {
	tk := New(0, "test")
	assert.True(t, tk.IsComplete())
	assert.Equal(t, 1.0, tk.Fraction())
	tk.Done()
	assert.Equal(t, StatusDone, tk.Status())
}

func TestSnapshotsAreIndependentCopies(t *testing.T) {
	tk := New(10, "test")
	snapshot := tk
	tk.Increment(5)
	assert.Equal(t, uint64(0), snapshot.Completed())
	assert.Equal(t, tk.ID(), snapshot.ID())
}

func TestTerminalTasksRejectMutation(t *testing.T) {
	done := New(10, "test")
	done.Done()
	assert.Equal(t, uint64(10), done.Completed())
	assert.Panics(t, func() { done.Increment(1) })
	assert.Panics(t, func() { done.Fail("late") })
	assert.Panics(t, func() { done.Done() })

	failed := New(10, "test")
	failed.Fail("boom")
	assert.Equal(t, "boom", failed.Message())
	assert.Panics(t, func() { failed.Increment(1) })
	assert.Panics(t, func() { failed.Done() })
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusNew.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusDone.IsTerminal())
	assert.True(t, StatusError.IsTerminal())
}
