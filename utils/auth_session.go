package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const AuthSessionPrefix = "authSession:"

// AuthSession is the Redis-side record for an issued bearer token, keyed by
// the token hash so that revocation works without touching the database.
type AuthSession struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveAuthSession saves the session in Redis with a TTL matching the token
// lifetime.
func SaveAuthSession(client *redis.Client, tokenHash string, session AuthSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, AuthSessionPrefix+tokenHash, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves the session for a token hash from Redis.
func GetAuthSession(client *redis.Client, tokenHash string) (*AuthSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, AuthSessionPrefix+tokenHash).Result()
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession removes a session from Redis.
func DeleteAuthSession(client *redis.Client, tokenHash string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthSessionPrefix+tokenHash).Err()
}
