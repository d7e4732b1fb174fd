package metrics

import (
	"context"
	"fmt"
	"time"

	relayredis "github.com/marcelsud/stream-relay/relay/redis"
)

// RedisCollector implements the Collector interface against the Redis store
type RedisCollector struct {
	store     *relayredis.Store
	queueName string
}

// NewRedisCollector creates a new Redis metrics collector
func NewRedisCollector(store *relayredis.Store, queueName string) *RedisCollector {
	return &RedisCollector{
		store:     store,
		queueName: queueName,
	}
}

// Collect gathers all metrics from Redis
func (c *RedisCollector) Collect(ctx context.Context) (Metrics, error) {
	queueLength, err := c.GetQueueLength(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting queue length: %w", err)
	}

	dedupSize, err := c.GetDedupSize(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting dedup size: %w", err)
	}

	workers, err := c.GetActiveWorkers(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting active workers: %w", err)
	}

	return Metrics{
		QueueLength: queueLength,
		DedupSize:   dedupSize,
		Workers:     workers,
		Timestamp:   time.Now(),
	}, nil
}

// GetQueueLength returns the number of envelopes waiting in the queue
func (c *RedisCollector) GetQueueLength(ctx context.Context) (int64, error) {
	return c.store.Len(ctx, c.queueName)
}

// GetDedupSize returns the number of webhook IDs inside the dedup window
func (c *RedisCollector) GetDedupSize(ctx context.Context) (int64, error) {
	return c.store.DedupSize(ctx, c.queueName)
}

// GetActiveWorkers returns heartbeat information for workers on this queue
func (c *RedisCollector) GetActiveWorkers(ctx context.Context) ([]WorkerInfo, error) {
	heartbeats, err := c.store.GetActiveWorkers(ctx, c.queueName)
	if err != nil {
		return nil, err
	}

	workers := make([]WorkerInfo, 0, len(heartbeats))
	for _, hb := range heartbeats {
		workers = append(workers, WorkerInfo{
			WorkerID:      hb.WorkerID,
			QueueName:     hb.QueueName,
			Status:        hb.Status,
			LastHeartbeat: hb.LastHeartbeat,
		})
	}

	return workers, nil
}
