package outbox

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutbox_RunsJob(t *testing.T) {
	box := New(8, 3, time.Millisecond)
	box.Start()

	done := make(chan struct{})
	ok := box.Enqueue(Job{
		Name: "test",
		Run: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not dispatched")
	}

	box.Stop()
}

func TestOutbox_RetriesUntilExhausted(t *testing.T) {
	box := New(8, 3, time.Millisecond)
	box.Start()

	var attempts atomic.Int32
	box.Enqueue(Job{
		Name: "flaky",
		Run: func(ctx context.Context) error {
			attempts.Add(1)
			return errors.New("provider down")
		},
	})

	assert.Eventually(t, func() bool {
		return attempts.Load() == 3
	}, 2*time.Second, 5*time.Millisecond)

	box.Stop()
	assert.Equal(t, int32(3), attempts.Load())
}

func TestOutbox_RecoversOnRetry(t *testing.T) {
	box := New(8, 3, time.Millisecond)
	box.Start()

	var attempts atomic.Int32
	done := make(chan struct{})
	box.Enqueue(Job{
		Name: "eventually-ok",
		Run: func(ctx context.Context) error {
			if attempts.Add(1) < 2 {
				return errors.New("transient")
			}
			close(done)
			return nil
		},
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never succeeded")
	}

	box.Stop()
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOutbox_FullQueueDrops(t *testing.T) {
	box := New(1, 1, time.Millisecond)
	// Not started: nothing drains the queue

	blocker := Job{Name: "a", Run: func(ctx context.Context) error { return nil }}
	require.True(t, box.Enqueue(blocker))
	assert.False(t, box.Enqueue(Job{Name: "b", Run: func(ctx context.Context) error { return nil }}))

	box.Start()
	box.Stop()
}

func TestOutbox_StopDrainsQueue(t *testing.T) {
	box := New(8, 1, time.Millisecond)
	box.Start()

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		box.Enqueue(Job{
			Name: "drain",
			Run: func(ctx context.Context) error {
				ran.Add(1)
				return nil
			},
		})
	}

	box.Stop()
	assert.Equal(t, int32(5), ran.Load())
}

func TestOutbox_DrainRunsWithLiveContext(t *testing.T) {
	box := New(8, 1, time.Millisecond)
	box.Start()

	started := make(chan struct{})
	release := make(chan struct{})
	box.Enqueue(Job{
		Name: "blocker",
		Run: func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		},
	})

	var drainedErr atomic.Value
	done := make(chan struct{})
	box.Enqueue(Job{
		Name: "queued-behind",
		Run: func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				drainedErr.Store(err)
			}
			close(done)
			return nil
		},
	})

	<-started
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	// Stop must drain the second job before canceling the context
	box.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued job was not drained on stop")
	}
	assert.Nil(t, drainedErr.Load())
}

func TestOutbox_RejectsAfterStop(t *testing.T) {
	box := New(8, 1, time.Millisecond)
	box.Start()
	box.Stop()

	ok := box.Enqueue(Job{Name: "late", Run: func(ctx context.Context) error { return nil }})
	assert.False(t, ok)
}
