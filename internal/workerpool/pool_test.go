package workerpool_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/workerpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsTasks(t *testing.T) {
	p := workerpool.New("test", 2, 8)
	defer p.Close()

	var n atomic.Int32
	done := make(chan struct{}, 4)
	for i := 0; i < 4; i++ {
		require.NoError(t, p.Submit(func(ctx context.Context) {
			n.Add(1)
			done <- struct{}{}
		}))
	}
	for i := 0; i < 4; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("task did not run")
		}
	}
	assert.Equal(t, int32(4), n.Load())
}

func TestPoolQueueFull(t *testing.T) {
	p := workerpool.New("full", 1, 1)
	defer p.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(func(ctx context.Context) {
		close(started)
		<-block
	}))
	<-started
	require.NoError(t, p.Submit(func(ctx context.Context) {}))
	assert.ErrorIs(t, p.Submit(func(ctx context.Context) {}), workerpool.ErrQueueFull)
	close(block)
}

func TestPoolRecoversFromPanic(t *testing.T) {
	p := workerpool.New("panic", 1, 2)
	defer p.Close()

	require.NoError(t, p.Submit(func(ctx context.Context) { panic("boom") }))
	ran := make(chan struct{})
	require.NoError(t, p.Submit(func(ctx context.Context) { close(ran) }))
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker died after panic")
	}
}

func TestSubmitAfterClose(t *testing.T) {
	p := workerpool.New("closed", 1, 1)
	p.Close()
	p.Close()
	assert.ErrorIs(t, p.Submit(func(ctx context.Context) {}), workerpool.ErrPoolClosed)
}
