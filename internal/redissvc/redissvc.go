// Package redissvc tracks rate-limit strikes and bans in Redis. Product
// data itself is never cached; the relational store stays the single
// source of truth.
package redissvc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:ban:"
	strikeWindow    = 10 * time.Minute
)

type StrikeStore struct {
	rdb *redis.Client
}

func NewStrikeStore(rdb *redis.Client) *StrikeStore {
	return &StrikeStore{rdb: rdb}
}

// RegisterStrike increments the strike counter for a client and returns
// the new count. The counter expires on its own so old strikes age out.
func (s *StrikeStore) RegisterStrike(ctx context.Context, clientID string) (int64, error) {
	key := strikeKeyPrefix + clientID
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		s.rdb.Expire(ctx, key, strikeWindow)
	}
	return count, nil
}

// Ban marks a client as banned for the given duration.
func (s *StrikeStore) Ban(ctx context.Context, clientID string, d time.Duration) error {
	return s.rdb.Set(ctx, banKeyPrefix+clientID, time.Now().Format(time.RFC3339), d).Err()
}

// IsBanned reports whether an active ban exists for the client.
func (s *StrikeStore) IsBanned(ctx context.Context, clientID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, banKeyPrefix+clientID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
