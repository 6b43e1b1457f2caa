package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/meikuraledutech/callflow/render"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRenderer struct {
	calls int
	err   error
}

func (c *countingRenderer) Render(_ context.Context, description string, format render.ImageFormat) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []byte(fmt.Sprintf("%s:%d:%s", format, c.calls, description)), nil
}

func setup(t *testing.T) (*Renderer, *countingRenderer, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), fmt.Sprintf("redis://%s", mr.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	logger, _ := test.NewNullLogger()
	next := &countingRenderer{}
	return New(client, next, Options{TTL: time.Minute, Logger: logger}), next, mr
}

func TestRenderCachesResult(t *testing.T) {
	r, next, mr := setup(t)
	ctx := context.Background()

	first, err := r.Render(ctx, "digraph {}", render.PNG)
	require.NoError(t, err)
	second, err := r.Render(ctx, "digraph {}", render.PNG)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.True(t, mr.Exists(r.Key("digraph {}", render.PNG)))

	_, err = r.Render(ctx, "digraph {}", render.SVG)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "format is part of the key")
}

func TestRenderExpires(t *testing.T) {
	r, next, mr := setup(t)
	ctx := context.Background()

	_, err := r.Render(ctx, "digraph {}", render.PNG)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = r.Render(ctx, "digraph {}", render.PNG)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestRenderErrorNotCached(t *testing.T) {
	r, next, mr := setup(t)
	next.err = errors.New("bad description")

	_, err := r.Render(context.Background(), "digraph {", render.PNG)
	assert.EqualError(t, err, "bad description")
	assert.False(t, mr.Exists(r.Key("digraph {", render.PNG)))
}

func TestRenderRedisDown(t *testing.T) {
	r, next, mr := setup(t)
	mr.Close()

	img, err := r.Render(context.Background(), "digraph {}", render.PNG)
	require.NoError(t, err)
	assert.Equal(t, "png:1:digraph {}", string(img))
	assert.Equal(t, 1, next.calls)
}

func TestInvalidate(t *testing.T) {
	r, next, _ := setup(t)
	ctx := context.Background()

	_, err := r.Render(ctx, "digraph {}", render.PNG)
	require.NoError(t, err)
	require.NoError(t, r.Invalidate(ctx, "digraph {}", render.PNG))
	_, err = r.Render(ctx, "digraph {}", render.PNG)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestKey(t *testing.T) {
	r := New(redis.NewClient(&redis.Options{}), &countingRenderer{}, Options{Prefix: "p"})
	key := r.Key("x", render.SVG)
	assert.Regexp(t, `^p:svg:[0-9a-f]{64}$`, key)
	assert.NotEqual(t, key, r.Key("y", render.SVG))
}

func TestNewClientBadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-url")
	assert.Error(t, err)
}
