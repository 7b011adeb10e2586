// Package redis provides a Redis-backed EventLog.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// EventLog implements ports.EventLog using Redis.
// Each run is a list of JSON records; a sorted set indexes the runs by creation time.
type EventLog struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*EventLog)

// WithTTL sets the expiration for runs.
func WithTTL(ttl time.Duration) Option {
	return func(l *EventLog) {
		l.ttl = ttl
	}
}

// WithPrefix sets the key prefix for runs.
func WithPrefix(prefix string) Option {
	return func(l *EventLog) {
		l.prefix = prefix
	}
}

// New creates a new Redis event log with options.
func New(address, password string, db int, opts ...Option) *EventLog {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis event log from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *EventLog {
	l := &EventLog{
		client: client,
		prefix: "cadence:run:",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *EventLog) key(runID string) string {
	return l.prefix + runID
}

func (l *EventLog) indexKey() string {
	return l.prefix + "index"
}

// Append pushes the record to the run list and registers the run in the index.
func (l *EventLog) Append(ctx context.Context, runID string, record domain.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, l.key(runID), data)
	if l.ttl > 0 {
		pipe.Expire(ctx, l.key(runID), l.ttl)
	}

	// Score = expiry time, so List can prune lazily. Without TTL runs never expire.
	score := float64(time.Now().Add(l.ttl).Unix())
	if l.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, l.indexKey(), backend.Z{Score: score, Member: runID})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// List returns the run records in insertion order.
func (l *EventLog) List(ctx context.Context, runID string) ([]domain.Record, error) {
	raw, err := l.client.LRange(ctx, l.key(runID), 0, -1).Result()
	if err != nil && !errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}
	if len(raw) == 0 {
		return nil, domain.ErrRunNotFound
	}

	records := make([]domain.Record, 0, len(raw))
	for i, item := range raw {
		var rec domain.Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the run and its index entry.
func (l *EventLog) Delete(ctx context.Context, runID string) error {
	pipe := l.client.Pipeline()
	pipe.Del(ctx, l.key(runID))
	pipe.ZRem(ctx, l.indexKey(), runID)
	_, err := pipe.Exec(ctx)
	return err
}

// Runs returns the indexed runs, pruning expired entries first.
func (l *EventLog) Runs(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := l.client.ZRemRangeByScore(ctx, l.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired runs: %w", err)
	}

	runs, err := l.client.ZRange(ctx, l.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Close closes the redis client.
func (l *EventLog) Close() error {
	return l.client.Close()
}
