package settle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksSettleIndependently(t *testing.T) {
	ctx := context.Background()

	ok := Go(ctx, func(context.Context) (string, error) {
		return "done", nil
	})
	failed := Go(ctx, func(context.Context) (string, error) {
		return "", errors.New("boom")
	})
	slow := Go(ctx, func(context.Context) (int, error) {
		time.Sleep(20 * time.Millisecond)
		return 42, nil
	})

	v, err := ok.Wait()
	require.NoError(t, err)
	assert.Equal(t, "done", v)

	// A sibling failure does not affect the others.
	_, err = failed.Wait()
	require.Error(t, err)

	n, err := slow.Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestWaitIsRepeatable(t *testing.T) {
	task := Go(context.Background(), func(context.Context) (int, error) {
		return 7, nil
	})

	for i := 0; i < 3; i++ {
		v, err := task.Wait()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
}

func TestTaskObservesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := Go(ctx, func(ctx context.Context) (int, error) {
		return 0, ctx.Err()
	})

	_, err := task.Wait()
	assert.ErrorIs(t, err, context.Canceled)
}
