package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollStopsWhenDone(t *testing.T) {
	var ticks int
	err := Poll(context.Background(), time.Millisecond, nil, func(ctx context.Context) (bool, error) {
		ticks++
		return ticks == 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, ticks)
}

func TestPollTicksImmediately(t *testing.T) {
	start := time.Now()
	err := Poll(context.Background(), time.Hour, nil, func(ctx context.Context) (bool, error) {
		return true, nil
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPollSwallowsTickErrors(t *testing.T) {
	var ticks int
	err := Poll(context.Background(), time.Millisecond, nil, func(ctx context.Context) (bool, error) {
		ticks++
		if ticks < 3 {
			return false, errors.New("transient")
		}
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, ticks)
}

func TestPollStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Poll(ctx, time.Hour, nil, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
