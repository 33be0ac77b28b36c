package suppression

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "notify:dead-token:"

// Cache is a Redis-backed list of device targets known to be permanently
// dead. It implements notification.SuppressionList. Entries carry a TTL so
// a token that gets re-issued to a device eventually becomes eligible again.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection
func New(url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Contains reports whether target is on the list
func (c *Cache) Contains(ctx context.Context, target string) (bool, error) {
	n, err := c.client.Exists(ctx, keyPrefix+target).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check suppression list: %w", err)
	}
	return n > 0, nil
}

// Add puts target on the list for the configured TTL
func (c *Cache) Add(ctx context.Context, target string) error {
	if err := c.client.Set(ctx, keyPrefix+target, "1", c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to add to suppression list: %w", err)
	}
	return nil
}

// Remove takes target off the list
func (c *Cache) Remove(ctx context.Context, target string) error {
	if err := c.client.Del(ctx, keyPrefix+target).Err(); err != nil {
		return fmt.Errorf("failed to remove from suppression list: %w", err)
	}
	return nil
}

// Close releases the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
