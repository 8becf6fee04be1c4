package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetStore keeps password-reset tokens with a TTL. Being persisted in
// Redis rather than process memory, tokens survive restarts and are
// shared across instances.
type ResetStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResetStore(rdb *redis.Client, ttl time.Duration) *ResetStore {
	return &ResetStore{rdb: rdb, ttl: ttl}
}

const resetPrefix = "pwreset:"

// ErrResetTokenInvalid is returned for unknown or expired reset tokens.
var ErrResetTokenInvalid = errors.New("invalid or expired reset token")

// Put stores token -> userID for the configured TTL.
func (s *ResetStore) Put(ctx context.Context, token string, userID uint64) error {
	return s.rdb.Set(ctx, resetPrefix+token, strconv.FormatUint(userID, 10), s.ttl).Err()
}

// Consume resolves the token to a user id and deletes it so a reset
// token can only be used once.
func (s *ResetStore) Consume(ctx context.Context, token string) (uint64, error) {
	key := resetPrefix + token
	v, err := s.rdb.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return 0, ErrResetTokenInvalid
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, ErrResetTokenInvalid
	}
	return id, nil
}
