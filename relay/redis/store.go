package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/stream-relay/relay"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of relay.Queue and relay.Deduper
 * Uses a Redis List (RPUSH/BLPOP) as the durable FIFO queue and a Set with
 * TTL for duplicate suppression, matching the key layout of the deployed
 * relay so queues and dedup windows survive a rollout
 */

const dedupPrefix = "processed" // dedup set naming: processed:{queue_name}

type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Store{
		client: client,
	}, nil
}

// Enqueue appends an item to the tail of the queue
func (s *Store) Enqueue(ctx context.Context, queueName string, data []byte) error {
	if err := s.client.RPush(ctx, queueName, data).Err(); err != nil {
		return &relay.ConnError{Err: err}
	}
	return nil
}

// Dequeue blocks up to timeout waiting for the head of the queue.
// Returns relay.ErrEmpty when nothing arrived before the timeout, so the
// worker loop stays responsive to shutdown between polls.
func (s *Store) Dequeue(ctx context.Context, queueName string, timeout time.Duration) ([]byte, error) {
	res, err := s.client.BLPop(ctx, timeout, queueName).Result()
	if errors.Is(err, redis.Nil) {
		return nil, relay.ErrEmpty
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &relay.ConnError{Err: err}
	}
	// BLPOP returns [key, value]
	if len(res) < 2 {
		return nil, &relay.ConnError{Err: fmt.Errorf("unexpected BLPOP reply of length %d", len(res))}
	}
	return []byte(res[1]), nil
}

// Ping checks live connectivity to the Redis backend
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Len returns the number of queued items, used by the metrics collector
func (s *Store) Len(ctx context.Context, queueName string) (int64, error) {
	length, err := s.client.LLen(ctx, queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("getting queue length: %w", err)
	}
	return length, nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (s *Store) GetClient() *redis.Client {
	return s.client
}

func dedupKey(queueName string) string {
	return fmt.Sprintf("%s:%s", dedupPrefix, queueName)
}
