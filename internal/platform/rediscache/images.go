package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

const keyPrefix = "atlas:image:"

type CachedImage struct {
	ID       uuid.UUID
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

// ImageCache is a read-through cache for sketch image bytes.
type ImageCache interface {
	Get(ctx context.Context, id uuid.UUID) (*CachedImage, bool, error)
	Set(ctx context.Context, img *CachedImage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type redisImageCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// Dial connects to addr and verifies the connection with a ping.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        strings.TrimSpace(addr),
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewImageCache wraps rdb. A nil client disables caching. The cache does not own rdb.
func NewImageCache(rdb *goredis.Client, ttl time.Duration, log *logger.Logger) ImageCache {
	if rdb == nil {
		return NewNopImageCache()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisImageCache{
		log: log.With("service", "RedisImageCache"),
		rdb: rdb,
		ttl: ttl,
	}
}

func key(id uuid.UUID) string { return keyPrefix + id.String() }

func (c *redisImageCache) Get(ctx context.Context, id uuid.UUID) (*CachedImage, bool, error) {
	vals, err := c.rdb.HGetAll(ctx, key(id)).Result()
	if errors.Is(err, goredis.Nil) || (err == nil && len(vals) == 0) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	w, _ := strconv.Atoi(vals["width"])
	h, _ := strconv.Atoi(vals["height"])
	return &CachedImage{
		ID:       id,
		Data:     []byte(vals["data"]),
		MimeType: vals["mime_type"],
		Width:    w,
		Height:   h,
	}, true, nil
}

func (c *redisImageCache) Set(ctx context.Context, img *CachedImage) error {
	if img == nil || img.ID == uuid.Nil {
		return nil
	}
	k := key(img.ID)
	_, err := c.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.HSet(ctx, k, map[string]interface{}{
			"data":      img.Data,
			"mime_type": img.MimeType,
			"width":     img.Width,
			"height":    img.Height,
		})
		p.Expire(ctx, k, c.ttl)
		return nil
	})
	if err != nil {
		c.log.Warn("image cache write failed", "image_id", img.ID, "error", err)
	}
	return err
}

func (c *redisImageCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.rdb.Del(ctx, key(id)).Err()
}

type nopImageCache struct{}

func NewNopImageCache() ImageCache { return nopImageCache{} }

func (nopImageCache) Get(context.Context, uuid.UUID) (*CachedImage, bool, error) {
	return nil, false, nil
}
func (nopImageCache) Set(context.Context, *CachedImage) error { return nil }
func (nopImageCache) Delete(context.Context, uuid.UUID) error { return nil }
