package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options holds the Redis connection configuration. The environment contract
// is deliberately small: address, credentials and timeouts.
type Options struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`

	// DialTimeout and OpTimeout bound every store interaction so an outage
	// surfaces as an error instead of a stalled caller.
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"2s"`
	OpTimeout   time.Duration `env:"OP_TIMEOUT" envDefault:"2s"`

	// PoolSize is passed through to the client's connection pool. Zero keeps
	// the client default (10 per CPU).
	PoolSize int `env:"POOL_SIZE"`
}

const environmentPrefix = "REDIS_"

// OptionsFromEnv reads Options from REDIS_* environment variables.
func OptionsFromEnv() (Options, error) {
	options := Options{}
	if err := env.ParseWithOptions(&options, env.Options{
		Prefix: environmentPrefix,
	}); err != nil {
		return Options{}, fmt.Errorf("parsing store options: %w", err)
	}
	return options, nil
}

// Client is the Redis-backed KV implementation. Connections are pooled and
// shared across callers; pool exhaustion and dial failures come back as
// errors from the individual operations, they never block indefinitely.
type Client struct {
	log *zap.Logger

	rdb *redis.Client
}

var _ KV = (*Client)(nil)

func NewClient(parentLogger *zap.Logger) *Client {
	return &Client{
		log: parentLogger.Named("store"),
	}
}

// Connect opens the connection pool and verifies the server is reachable.
func (c *Client) Connect(ctx context.Context, options Options) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     options.Addr,
		Password: options.Password,
		DB:       options.DB,

		DialTimeout:  options.DialTimeout,
		ReadTimeout:  options.OpTimeout,
		WriteTimeout: options.OpTimeout,
		PoolSize:     options.PoolSize,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}

	c.rdb = rdb
	c.log.With(zap.String("addr", options.Addr), zap.Int("db", options.DB)).Info("store connected")

	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("getting %q: %w", key, err)
	}
	return value, nil
}

func (c *Client) Del(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("checking %q: %w", key, err)
	}
	return n > 0, nil
}

func (c *Client) Scan(ctx context.Context, match string) ([]string, error) {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, match, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning %q: %w", match, err)
	}
	return keys, nil
}
