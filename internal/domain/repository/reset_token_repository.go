package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ambassador_portal/internal/common"

	"github.com/redis/go-redis/v9"
)

// ResetTokenRepository stores password reset tokens with a server-side
// expiry. At most one live token exists per principal; creating a new one
// replaces any previous token.
type ResetTokenRepository interface {
	Create(ctx context.Context, token, userID, kind string, ttl time.Duration) error
	// Find resolves a token to its (userID, kind) pair. Expired tokens are
	// purged by the store and resolve to ErrNotFound.
	Find(ctx context.Context, token string) (userID string, kind string, err error)
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID, kind string) error
}

type redisResetTokenRepository struct {
	rdb *redis.Client
}

func NewRedisResetTokenRepository(rdb *redis.Client) ResetTokenRepository {
	return &redisResetTokenRepository{rdb: rdb}
}

func tokenKey(token string) string        { return "reset:token:" + token }
func ownerKey(kind, userID string) string { return "reset:owner:" + kind + ":" + userID }

func (r *redisResetTokenRepository) Create(ctx context.Context, token, userID, kind string, ttl time.Duration) error {
	if err := r.DeleteAllForUser(ctx, userID, kind); err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, tokenKey(token), kind+":"+userID, ttl)
	pipe.Set(ctx, ownerKey(kind, userID), token, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisResetTokenRepository.Create: %w", err)
	}
	return nil
}

func (r *redisResetTokenRepository) Find(ctx context.Context, token string) (string, string, error) {
	val, err := r.rdb.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", common.ErrNotFound
		}
		return "", "", fmt.Errorf("redisResetTokenRepository.Find: %w", err)
	}
	kind, userID, ok := strings.Cut(val, ":")
	if !ok {
		return "", "", fmt.Errorf("redisResetTokenRepository.Find: malformed token record")
	}
	return userID, kind, nil
}

func (r *redisResetTokenRepository) Delete(ctx context.Context, token string) error {
	val, err := r.rdb.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redisResetTokenRepository.Delete: %w", err)
	}
	keys := []string{tokenKey(token)}
	if kind, userID, ok := strings.Cut(val, ":"); ok {
		keys = append(keys, ownerKey(kind, userID))
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redisResetTokenRepository.Delete: %w", err)
	}
	return nil
}

func (r *redisResetTokenRepository) DeleteAllForUser(ctx context.Context, userID, kind string) error {
	prev, err := r.rdb.Get(ctx, ownerKey(kind, userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redisResetTokenRepository.DeleteAllForUser: %w", err)
	}
	if err := r.rdb.Del(ctx, tokenKey(prev), ownerKey(kind, userID)).Err(); err != nil {
		return fmt.Errorf("redisResetTokenRepository.DeleteAllForUser: %w", err)
	}
	return nil
}
