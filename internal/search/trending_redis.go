// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisSnapshots stores trending rankings as JSON strings with a TTL.
type redisSnapshots struct {
	client redis.UniversalClient
}

// NewRedisSnapshots constructs a Redis backed [SnapshotStore].
func NewRedisSnapshots(client redis.UniversalClient) SnapshotStore {
	return &redisSnapshots{client: client}
}

// Load implements [SnapshotStore]. A missing key is not an error.
func (store *redisSnapshots) Load(context context.Context, key string) ([]TrendingQuery, bool, error) {
	raw, err := store.client.Get(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", key, err)
	}

	var ranking []TrendingQuery
	if err := json.Unmarshal(raw, &ranking); err != nil {
		return nil, false, fmt.Errorf("redis: decode %s: %w", key, err)
	}
	if ranking == nil {
		ranking = []TrendingQuery{}
	}
	return ranking, true, nil
}

// Save implements [SnapshotStore].
func (store *redisSnapshots) Save(context context.Context, key string, ranking []TrendingQuery, ttl time.Duration) error {
	raw, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("redis: encode %s: %w", key, err)
	}
	if err := store.client.Set(context, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}
