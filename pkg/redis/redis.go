package redis

import (
	"context"
	"time"

	"leaguedash/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the underlying redis client.
type Client struct {
	*redis.Client
}

// NewClient creates the redis client from the configuration.
func NewClient(cfg *config.Config) *Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     100,
		MinIdleConns: 10,
		PoolTimeout:  30 * time.Second,
	})

	return &Client{Client: client}
}

// Close the client connection.
func (r *Client) Close() error {
	return r.Client.Close()
}

// Get wrapper to return the Result directly.
func (r *Client) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

// Set wrapper to already return the .Err().
func (r *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}
