package cache

import (
	"context"
	"time"

	"github.com/RISHIK92/vyapaar-backend/internal/config"
	"github.com/RISHIK92/vyapaar-backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "vyapaar:location:"

// Redis is a Store backed by a Redis instance, for deployments where the
// resolver cache is shared across replicas.
type Redis struct {
	client *redis.Client
}

// NewRedis connects a Redis-backed store.
func NewRedis(cfg *config.Config) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: rdb}, nil
}

// NewRedisWithClient wraps an existing client. Used by tests.
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetLogger("cache").Warnf("redis get failed for %s: %v", key, err)
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		logger.GetLogger("cache").Warnf("redis set failed for %s: %v", key, err)
	}
}

func (r *Redis) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			logger.GetLogger("cache").Warnf("redis clear failed: %v", err)
		}
	}
}

// Close closes the underlying connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
