package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/storefront-server/internal/model"
)

const keyPrefix = "denylist:"

// Client is the subset of *redis.Client used by the denylist.
type Client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
}

var _ model.TokenDenylist = (*Denylist)(nil)

// Denylist stores revoked token ids until the tokens would have expired anyway.
type Denylist struct {
	client Client
}

func NewDenylist(client Client) *Denylist {
	return &Denylist{client: client}
}

// NewClient connects to a redis server and checks it responds.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Add marks jti as revoked for ttl. Tokens that are already expired are skipped.
func (d *Denylist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := d.client.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (d *Denylist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return n > 0, nil
}
