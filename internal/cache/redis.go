package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/tripmates/config"
	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/redis/go-redis/v9"
)

// versionTTL bounds how long an idle per-name version counter is kept. It is
// refreshed on every invalidation.
const versionTTL = 24 * time.Hour

var errVersionChanged = errors.New("trips list version changed")

type RedisCache struct {
	client  *redis.Client
	listTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), listTTL)
}

func NewRedisCacheWithClient(client *redis.Client, listTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, listTTL: listTTL}
}

// GetTripsByName returns (nil, nil) on a miss.
func (c *RedisCache) GetTripsByName(ctx context.Context, fullName string) ([]domain.Trip, error) {
	data, err := c.client.Get(ctx, tripsByNameKey(fullName)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	trips := make([]domain.Trip, 0)
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// TripsByNameVersion returns the current list version for fullName. A fill
// must read it before querying the store and hand it to SetTripsByName.
func (c *RedisCache) TripsByNameVersion(ctx context.Context, fullName string) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(fullName)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetTripsByName stores trips only if no invalidation happened since version
// was read. It reports whether the list was stored.
func (c *RedisCache) SetTripsByName(ctx context.Context, fullName string, version int64, trips []domain.Trip) (bool, error) {
	payload, err := json.Marshal(trips)
	if err != nil {
		return false, err
	}

	vkey := versionKey(fullName)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errVersionChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, tripsByNameKey(fullName), payload, c.listTTL)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errVersionChanged), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, err
	}
}

// InvalidateTripsByName bumps the list version and drops the cached list, so
// any fill that started earlier is rejected.
func (c *RedisCache) InvalidateTripsByName(ctx context.Context, fullName string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(fullName))
		pipe.Expire(ctx, versionKey(fullName), versionTTL)
		pipe.Del(ctx, tripsByNameKey(fullName))
		return nil
	})
	return err
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func tripsByNameKey(fullName string) string {
	return "trips:by-name:" + fullName
}

func versionKey(fullName string) string {
	return "trips:by-name-version:" + fullName
}
