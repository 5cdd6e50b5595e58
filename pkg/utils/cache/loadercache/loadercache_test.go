package loadercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/accstats/pkg/utils/cache"
)

type counter struct {
	calls int
}

func (c *counter) load(_ context.Context, key string) (*string, error) {
	c.calls++
	if key == "fail" {
		return nil, errors.New("boom")
	}
	v := key + "-value"
	return &v, nil
}

func TestGetExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cnt := &counter{}
	c := New(
		WithLoader[string, string](cnt.load),
		WithExpiration[string, string](time.Minute),
		WithClock[string, string](func() time.Time { return now }),
	)
	ctx := context.Background()

	v, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a-value", *v)

	now = now.Add(59 * time.Second)
	_, err = c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, cnt.calls)

	now = now.Add(time.Second)
	_, err = c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, cnt.calls)

	c.Invalidate(ctx, "a")
	_, err = c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, cnt.calls)
}

func TestGetErrorNotCached(t *testing.T) {
	cnt := &counter{}
	c := New(WithLoader[string, string](cnt.load))
	_, err := c.Get(context.Background(), "fail")
	assert.Error(t, err)
	_, err = c.Get(context.Background(), "fail")
	assert.Error(t, err)
	assert.Equal(t, 2, cnt.calls)
}

func TestGetWithoutLoader(t *testing.T) {
	c := New[string, string]()
	_, err := c.Get(context.Background(), "a")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
