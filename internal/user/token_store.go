package user

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const resetTokenTTL = 15 * time.Minute

// TokenStore holds short-lived password-reset tokens. Backed by redis so
// tokens survive restarts and are shared across instances.
type TokenStore interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Redeem(ctx context.Context, token string) (uint, error)
}

type redisTokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(addr, password string) (TokenStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &redisTokenStore{rdb: rdb}, nil
}

func (s *redisTokenStore) Issue(ctx context.Context, userID uint) (string, error) {
	token := uuid.New().String()
	if err := s.rdb.Set(ctx, resetKey(token), userID, resetTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Redeem consumes the token: a second redemption of the same token fails.
func (s *redisTokenStore) Redeem(ctx context.Context, token string) (uint, error) {
	userID, err := s.rdb.GetDel(ctx, resetKey(token)).Uint64()
	if err == redis.Nil {
		return 0, ErrInvalidResetToken
	}
	if err != nil {
		return 0, err
	}
	return uint(userID), nil
}

func resetKey(token string) string {
	return "pwreset:" + token
}
