// Package store holds the Redis-backed token stores. Both stores lean
// on Redis key expiry instead of application-level polling: a
// blacklisted token disappears exactly when it would have expired
// anyway, and reset tokens vanish after their TTL.
package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist records revoked bearer tokens until their natural expiry.
type Blacklist struct {
	rdb *redis.Client
}

func NewBlacklist(rdb *redis.Client) *Blacklist {
	return &Blacklist{rdb: rdb}
}

const blacklistPrefix = "blacklist:"

// Add stores the raw token with a TTL matching its remaining lifetime.
// Tokens already past their expiry are not stored; they are rejected by
// signature verification anyway.
func (b *Blacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, blacklistPrefix+token, "1", ttl).Err()
}

// Contains reports whether the token has been revoked.
func (b *Blacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.rdb.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
