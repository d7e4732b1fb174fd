package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WorkerHeartbeat(t *testing.T) {
	ctx := context.Background()

	t.Run("set and list active workers", func(t *testing.T) {
		_, store := setupTestStore(t)

		require.NoError(t, store.SetWorkerHeartbeat(ctx, "worker-1", testQueue, "idle"))
		require.NoError(t, store.SetWorkerHeartbeat(ctx, "worker-2", testQueue, "processing"))

		workers, err := store.GetActiveWorkers(ctx, testQueue)
		require.NoError(t, err)
		require.Len(t, workers, 2)

		byID := make(map[string]string)
		for _, w := range workers {
			byID[w.WorkerID] = w.Status
			assert.Equal(t, testQueue, w.QueueName)
		}
		assert.Equal(t, "idle", byID["worker-1"])
		assert.Equal(t, "processing", byID["worker-2"])
	})

	t.Run("heartbeat updates replace previous status", func(t *testing.T) {
		_, store := setupTestStore(t)

		require.NoError(t, store.SetWorkerHeartbeat(ctx, "worker-1", testQueue, "idle"))
		require.NoError(t, store.SetWorkerHeartbeat(ctx, "worker-1", testQueue, "processing"))

		workers, err := store.GetActiveWorkers(ctx, testQueue)
		require.NoError(t, err)
		require.Len(t, workers, 1)
		assert.Equal(t, "processing", workers[0].Status)
	})

	t.Run("stale workers expire after 60 seconds", func(t *testing.T) {
		mr, store := setupTestStore(t)

		require.NoError(t, store.SetWorkerHeartbeat(ctx, "worker-1", testQueue, "idle"))

		mr.FastForward(61 * time.Second)

		workers, err := store.GetActiveWorkers(ctx, testQueue)
		require.NoError(t, err)
		assert.Empty(t, workers)
	})

	t.Run("workers are scoped to their queue", func(t *testing.T) {
		_, store := setupTestStore(t)

		require.NoError(t, store.SetWorkerHeartbeat(ctx, "worker-1", "queue_a", "idle"))

		workers, err := store.GetActiveWorkers(ctx, "queue_b")
		require.NoError(t, err)
		assert.Empty(t, workers)
	})
}
