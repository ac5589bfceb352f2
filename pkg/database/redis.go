package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(redisURL string) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// Redis key prefixes for organization
const (
	KeyPrefixSession       = "session:"
	KeyPrefixRateLimit     = "ratelimit:"
	KeyPrefixGitHubProfile = "ghprofile:"
)

// Session management for refresh tokens

func SetSession(ctx context.Context, client *redis.Client, tokenHash string, userID string, expiry time.Duration) error {
	return client.Set(ctx, KeyPrefixSession+tokenHash, userID, expiry).Err()
}

func GetSession(ctx context.Context, client *redis.Client, tokenHash string) (string, error) {
	return client.Get(ctx, KeyPrefixSession+tokenHash).Result()
}

func DeleteSession(ctx context.Context, client *redis.Client, tokenHash string) error {
	return client.Del(ctx, KeyPrefixSession+tokenHash).Err()
}

// Rate limiting

func IncrementRateLimit(ctx context.Context, client *redis.Client, key string, window time.Duration) (int64, error) {
	fullKey := KeyPrefixRateLimit + key
	pipe := client.Pipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
