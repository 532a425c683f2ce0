package codes

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const DefaultRedisPrefix = "ticket_code:"

// RedisRegistry claims codes with SETNX so that several sessions sharing a
// Redis instance never hand out the same code.
type RedisRegistry struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{
		Client: client,
		Prefix: DefaultRedisPrefix,
		TTL:    ttl,
	}
}

func (r *RedisRegistry) Claim(ctx context.Context, code string) (bool, error) {
	return r.Client.SetNX(ctx, r.Prefix+code, time.Now().UTC().Format(time.RFC3339), r.TTL).Result()
}

// Release frees a claimed code, e.g. when a sale fails after the claim.
func (r *RedisRegistry) Release(ctx context.Context, code string) error {
	return r.Client.Del(ctx, r.Prefix+code).Err()
}
