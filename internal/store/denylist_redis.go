package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medkit-lab/labauth/internal/config"
)

const denylistKeyPrefix = "denylist:"

// RedisDenylist implements TokenDenylist on Redis. Keys expire together
// with the tokens they shadow, so the set never needs explicit cleanup.
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist connects to the configured Redis instance and verifies
// it with a ping.
func NewRedisDenylist(ctx context.Context, cfg config.Redis) (*RedisDenylist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(ErrDatabaseConnection, err)
	}

	return &RedisDenylist{client: client}, nil
}

// Add marks jti as revoked for ttl. A token that has already expired
// needs no entry.
func (d *RedisDenylist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	return d.client.Set(ctx, denylistKeyPrefix+jti, 1, ttl).Err()
}

func (d *RedisDenylist) Contains(ctx context.Context, jti string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (d *RedisDenylist) Close() error {
	return d.client.Close()
}
