// Package cache keeps rendered images in Redis so identical descriptions
// are only rendered once.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/meikuraledutech/callflow/render"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPrefix = "callflow:render"
	DefaultTTL    = 24 * time.Hour
)

// Options configures a caching renderer.
type Options struct {
	// Prefix namespaces cache keys. Default: "callflow:render".
	Prefix string
	// TTL is how long an image stays cached. Default: 24h.
	TTL    time.Duration
	Logger logrus.FieldLogger
}

// Renderer wraps another render.Renderer with a Redis read-through cache.
// Redis failures are logged and never fail a render.
type Renderer struct {
	next   render.Renderer
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    logrus.FieldLogger
}

var _ render.Renderer = (*Renderer)(nil)

// NewClient connects to Redis at url (e.g. "redis://localhost:6379/0")
// and verifies the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return client, nil
}

// New wraps next with a cache stored in client.
func New(client *redis.Client, next render.Renderer, opts Options) *Renderer {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Renderer{
		next:   next,
		client: client,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
		log:    opts.Logger.WithField("component", "cache"),
	}
}

// Key returns the cache key for a description rendered in format.
func (r *Renderer) Key(description string, format render.ImageFormat) string {
	sum := sha256.Sum256([]byte(description))
	return fmt.Sprintf("%s:%s:%s", r.prefix, format, hex.EncodeToString(sum[:]))
}

// Render returns the cached image if present, otherwise renders with the
// wrapped renderer and stores the result.
func (r *Renderer) Render(ctx context.Context, description string, format render.ImageFormat) ([]byte, error) {
	key := r.Key(description, format)
	log := r.log.WithField("key", key)

	cached, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		log.Debug("render cache hit")
		return cached, nil
	case errors.Is(err, redis.Nil):
		log.Debug("render cache miss")
	default:
		log.WithError(err).Warn("render cache read failed")
	}

	img, err := r.next.Render(ctx, description, format)
	if err != nil {
		return nil, err
	}

	if err := r.client.Set(ctx, key, img, r.ttl).Err(); err != nil {
		log.WithError(err).Warn("render cache write failed")
	}
	return img, nil
}

// Invalidate removes a cached image.
func (r *Renderer) Invalidate(ctx context.Context, description string, format render.ImageFormat) error {
	if err := r.client.Del(ctx, r.Key(description, format)).Err(); err != nil {
		return fmt.Errorf("cache: delete: %w", err)
	}
	return nil
}
