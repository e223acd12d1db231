package manager_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/manager"
	"github.com/stretchr/testify/assert"
)

func TestRunReturnsTaskError(t *testing.T) {
	m := manager.NewWorkManager(manager.WithDBWorkers(1), manager.WithCryptoWorkers(1), manager.WithQueueSize(4))
	defer m.Close()

	boom := errors.New("boom")
	assert.ErrorIs(t, m.DB(context.Background(), func(ctx context.Context) error { return boom }), boom)
	assert.NoError(t, m.Crypto(context.Background(), func(ctx context.Context) error { return nil }))
}

func TestRunHonorsCallerContext(t *testing.T) {
	m := manager.NewWorkManager(manager.WithDBWorkers(1), manager.WithQueueSize(4))
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	taskSawCancel := make(chan struct{})
	err := m.DB(ctx, func(taskCtx context.Context) error {
		<-taskCtx.Done()
		close(taskSawCancel)
		return taskCtx.Err()
	})
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled), "got %v", err)

	select {
	case <-taskSawCancel:
	case <-time.After(time.Second):
		t.Fatal("task context was not cancelled")
	}
}
