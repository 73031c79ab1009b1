package async_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	future := async.Async(ctx, 42, func(ctx context.Context, num int) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return fmt.Sprintf("Number: %d", num), nil
	})

	res, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, "Number: 42", res)
	assert.True(t, future.IsComplete())
}

func TestAsync_ErrorPropagation(t *testing.T) {
	t.Parallel()

	expected := errors.New("server check failed")
	future := async.Async(context.Background(), 1, func(ctx context.Context, _ int) (int, error) {
		return 0, expected
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, expected)
}

func TestAsync_PanicIsContained(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), "x", func(ctx context.Context, _ string) (bool, error) {
		panic("boom")
	})

	_, err := future.Await()
	require.Error(t, err)
	assert.ErrorIs(t, err, async.ErrPanic)

	var panicErr *async.PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "boom", panicErr.Value)
}

func TestAsync_PreCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := make(chan struct{}, 1)
	future := async.Async(ctx, 1, func(ctx context.Context, n int) (int, error) {
		called <- struct{}{}
		return n, nil
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, called)
}

func TestResolved(t *testing.T) {
	t.Parallel()

	future := async.Resolved("ready", nil)
	assert.True(t, future.IsComplete())

	select {
	case <-future.Done():
	default:
		t.Fatal("expected Done channel to be closed")
	}

	res, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, "ready", res)
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
		<-release
		return 1, nil
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := future.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, future.IsComplete())
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("completes before timeout", func(t *testing.T) {
		future := async.Async(context.Background(), 1, func(ctx context.Context, n int) (int, error) {
			return n + 1, nil
		})
		res, err := future.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, 2, res)
	})

	t.Run("times out", func(t *testing.T) {
		future := async.Async(context.Background(), 1, func(ctx context.Context, n int) (int, error) {
			time.Sleep(200 * time.Millisecond)
			return n, nil
		})
		_, err := future.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("collects results in order", func(t *testing.T) {
		futures := []*async.Future[int]{
			async.Async(ctx, 30, sleepReturn),
			async.Async(ctx, 10, sleepReturn),
			async.Resolved(5, nil),
		}
		res, err := async.WaitAll(futures...)
		require.NoError(t, err)
		assert.Equal(t, []int{30, 10, 5}, res)
	})

	t.Run("returns first error", func(t *testing.T) {
		expected := errors.New("second failed")
		futures := []*async.Future[int]{
			async.Resolved(1, nil),
			async.Resolved(0, expected),
			async.Resolved(3, nil),
		}
		res, err := async.WaitAll(futures...)
		assert.ErrorIs(t, err, expected)
		assert.Equal(t, []int{1, 0, 0}, res)
	})
}

func sleepReturn(_ context.Context, ms int) (int, error) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return ms, nil
}
