// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
)

const pingTimeout = 3 * time.Second

// RedisClient holds the connection used to read and publish model artifacts.
type RedisClient struct {
	Client *redis.Client
	addr   string
}

// NewRedis builds a client without dialing. Artifact traffic is a handful of
// reads at startup, so the pool stays small.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	})
	return &RedisClient{Client: rdb, addr: cfg.Address}, nil
}

// Connect builds a client and pings it, closing the client if the ping fails.
func Connect(ctx context.Context, cfg config.RedisConfig) (*RedisClient, error) {
	c, err := NewRedis(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *RedisClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s failed: %w", c.addr, err)
	}
	return nil
}

// Cmdable exposes the client as the command interface the artifact store takes.
func (c *RedisClient) Cmdable() redis.Cmdable {
	return c.Client
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
