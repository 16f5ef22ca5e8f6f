package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDispatcher_RunsSubmittedTasks(t *testing.T) {
	d := NewDispatcher(2, 16, zap.NewNop())
	d.Start()

	var ran atomic.Int64
	for i := 0; i < 10; i++ {
		d.Submit(Task{Name: "count", Run: func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}})
	}
	d.Stop()

	assert.Equal(t, int64(10), ran.Load())
	assert.Zero(t, d.Dropped())
}

func TestDispatcher_FailureDoesNotStopOthers(t *testing.T) {
	d := NewDispatcher(1, 16, zap.NewNop())
	d.Start()

	var ran atomic.Int64
	d.Submit(Task{Name: "boom", Run: func(ctx context.Context) error {
		return errors.New("push provider unavailable")
	}})
	d.Submit(Task{Name: "panic", Run: func(ctx context.Context) error {
		panic("socket gone")
	}})
	d.Submit(Task{Name: "ok", Run: func(ctx context.Context) error {
		ran.Add(1)
		return nil
	}})
	d.Stop()

	assert.Equal(t, int64(1), ran.Load())
}

func TestDispatcher_SubmitAfterStopDrops(t *testing.T) {
	d := NewDispatcher(1, 4, zap.NewNop())
	d.Start()
	d.Stop()

	d.Submit(Task{Name: "late", Run: func(ctx context.Context) error { return nil }})
	assert.Equal(t, int64(1), d.Dropped())
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	d := NewDispatcher(1, 1, zap.NewNop())
	d.Start()
	defer d.Stop()

	block := make(chan struct{})
	d.Submit(Task{Name: "blocker", Run: func(ctx context.Context) error {
		<-block
		return nil
	}})

	// Give the single worker time to pick up the blocker, then fill the
	// one-slot queue and overflow it.
	time.Sleep(20 * time.Millisecond)
	d.Submit(Task{Name: "queued", Run: func(ctx context.Context) error { return nil }})

	done := make(chan struct{})
	go func() {
		d.Submit(Task{Name: "overflow", Run: func(ctx context.Context) error { return nil }})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}
	assert.Equal(t, int64(1), d.Dropped())
	close(block)
}
