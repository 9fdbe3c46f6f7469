package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReturnsTaskError(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 4}, nil)
	defer p.Shutdown(context.Background())

	want := errors.New("boom")
	err := p.Submit(context.Background(), func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)

	err = p.Submit(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestSubmitConcurrent(t *testing.T) {
	p := New(&Config{MaxWorkers: 3, QueueSize: 16}, nil)

	var n atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Submit(context.Background(), func(context.Context) error {
				time.Sleep(time.Millisecond)
				n.Add(1)
				return nil
			}))
		}()
	}
	wg.Wait()

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, int32(10), n.Load())
}

func TestShutdownTimeoutWithRunningTask(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 2}, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = p.Submit(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	assert.Equal(t, int64(1), p.ActiveCount())
	assert.Zero(t, p.QueuedCount())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Shutdown(ctx), context.DeadlineExceeded)

	close(release)
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := New(nil, nil)
	require.NoError(t, p.Shutdown(context.Background()))
	err := p.Submit(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)
	// second shutdown is a no-op
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSubmitCancelledContext(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Submit(ctx, func(context.Context) error { return nil })
	assert.Error(t, err)
}
