package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andornaut/filectrl/internal/command"
)

func TestThrottleReady(t *testing.T) {
	th := newThrottle(100 * time.Millisecond)
	now := time.Now()
	assert.True(t, th.ready(now))
	assert.False(t, th.ready(now.Add(50*time.Millisecond)))
	assert.True(t, th.ready(now.Add(100*time.Millisecond)))

	var disabled *throttle
	assert.True(t, disabled.ready(now))
	assert.Equal(t, defaultPeriod, newThrottle(0).period())
}

func TestWatcherSendsRefreshOnChange(t *testing.T) {
	dir := t.TempDir()
	bus := command.NewBus(16)
	w, err := NewWatcher(bus.Sender(), 10*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	assert.Equal(t, dir, w.Current())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	var got []command.Command
	require.Eventually(t, func() bool {
		got = append(got, bus.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.IsType(t, command.RefreshDir{}, got[0])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchRetargets(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	w, err := NewWatcher(command.NewBus(1).Sender(), time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { w.fs.Close() })

	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Watch(second))
	assert.Equal(t, second, w.Current())

	require.Error(t, w.Watch(filepath.Join(first, "missing")))
	assert.Empty(t, w.Current())
}
