package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/limbo/coco/pkg/entity"
)

const (
	redisKeyPrefix = "coco:snapshot:"
	redisOpTimeout = 2 * time.Second
)

// RedisCache shares snapshots between several API instances on one host group.
type RedisCache struct {
	rdb *goredis.Client
}

func NewRedisCache(addr string) (*RedisCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

func NewRedisCacheWithClient(rdb *goredis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

func (c *RedisCache) Save(uid uuid.UUID, snapshot *entity.UserPracticeSnapshot) error {
	raw, err := encode(snapshot)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := c.rdb.Set(ctx, redisKeyPrefix+uid.String(), raw, 0).Err(); err != nil {
		return wrap("saving snapshot", err)
	}
	return nil
}

func (c *RedisCache) Load(uid uuid.UUID) (*entity.UserPracticeSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	raw, err := c.rdb.Get(ctx, redisKeyPrefix+uid.String()).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, wrap("loading snapshot", err)
	}
	return decode(raw)
}

func (c *RedisCache) Clear(uid uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := c.rdb.Del(ctx, redisKeyPrefix+uid.String()).Err(); err != nil {
		return wrap("clearing snapshot", err)
	}
	return nil
}
