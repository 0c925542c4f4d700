package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrResetTokenInvalid covers unknown, expired and already used tokens.
var ErrResetTokenInvalid = errors.New("invalid or expired reset token")

const resetPrefix = "pwreset:"

// ResetStore keeps password-reset tokens in Redis until they expire or are
// consumed.
type ResetStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects and pings with a short timeout.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

func NewResetStore(client *redis.Client, ttl time.Duration) *ResetStore {
	return &ResetStore{client: client, ttl: ttl}
}

// Issue creates a token bound to userID.
func (s *ResetStore) Issue(ctx context.Context, userID int) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, resetPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// Consume returns the user the token was issued for and deletes it.
func (s *ResetStore) Consume(ctx context.Context, token string) (int, error) {
	val, err := s.client.GetDel(ctx, resetPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrResetTokenInvalid
	}
	if err != nil {
		return 0, fmt.Errorf("read reset token: %w", err)
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, ErrResetTokenInvalid
	}
	return userID, nil
}
