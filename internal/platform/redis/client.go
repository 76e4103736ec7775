// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the optional shared client used for trending snapshots.

Redis is never the source of truth here: every value stored through this client
can be recomputed from PostgreSQL, so callers treat failures as cache misses.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Snapshot traffic is a handful of small GET/SET calls per trending request.
const (
	poolSize     = 4
	dialTimeout  = 2 * time.Second
	readTimeout  = 300 * time.Millisecond
	writeTimeout = 300 * time.Millisecond
	pingTimeout  = 2 * time.Second
)

/*
NewClient parses a Redis URL and returns a verified client.

Commands are never retried: a slow snapshot store must not delay a trending
response that PostgreSQL can answer on its own.

Parameters:
  - context: Context for the initial ping
  - redisURL: redis:// or rediss:// connection URL
  - logger: Structured logger for connection events

Returns:
  - *redis.Client: Connected client, owned by the caller
  - error: URL parse or ping failures
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = poolSize
	options.MaxRetries = -1
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_snapshot_store_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)

	return client, nil
}

// Ping verifies that the Redis client answers within [pingTimeout].
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
