package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WorkerHeartbeat represents the heartbeat data for a forwarding worker
type WorkerHeartbeat struct {
	WorkerID      string    `json:"worker_id"`
	QueueName     string    `json:"queue_name"`
	Status        string    `json:"status"` // "idle", "processing", "backoff"
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// SetWorkerHeartbeat stores or updates a worker's heartbeat in Redis
// The heartbeat key has a TTL of 60 seconds - if a worker doesn't send a
// heartbeat within that time, it's considered inactive
func (s *Store) SetWorkerHeartbeat(ctx context.Context, workerID, queueName, status string) error {
	key := fmt.Sprintf("worker:heartbeat:%s:%s", queueName, workerID)

	heartbeat := WorkerHeartbeat{
		WorkerID:      workerID,
		QueueName:     queueName,
		Status:        status,
		LastHeartbeat: time.Now(),
	}

	data, err := json.Marshal(heartbeat)
	if err != nil {
		return fmt.Errorf("marshaling heartbeat: %w", err)
	}

	// Set with 60 second TTL - workers refresh on every poll iteration
	err = s.client.Set(ctx, key, data, 60*time.Second).Err()
	if err != nil {
		return fmt.Errorf("setting heartbeat: %w", err)
	}

	return nil
}

// GetActiveWorkers retrieves all active workers for a given queue
func (s *Store) GetActiveWorkers(ctx context.Context, queueName string) ([]WorkerHeartbeat, error) {
	pattern := fmt.Sprintf("worker:heartbeat:%s:*", queueName)
	var workers []WorkerHeartbeat

	var cursor uint64
	for {
		keys, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning worker keys: %w", err)
		}

		for _, key := range keys {
			data, err := s.client.Get(ctx, key).Result()
			if err == redis.Nil {
				// Key expired between scan and get
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("getting worker heartbeat: %w", err)
			}

			var heartbeat WorkerHeartbeat
			if err := json.Unmarshal([]byte(data), &heartbeat); err != nil {
				continue
			}

			workers = append(workers, heartbeat)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return workers, nil
}
