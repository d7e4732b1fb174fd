package redis_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	relayredis "github.com/marcelsud/stream-relay/relay/redis"
	"github.com/stretchr/testify/require"
)

/* Test Helpers for Redis unit tests
 * miniredis gives a real protocol-level Redis in-process, including TTL
 * control via FastForward, so queue and dedup behavior can be tested
 * without Docker. The testcontainers suite behind the integration tag
 * covers the real server.
 */

// setupTestStore starts an in-process Redis and connects a Store to it
func setupTestStore(t *testing.T) (*miniredis.Miniredis, *relayredis.Store) {
	t.Helper()

	mr := miniredis.RunT(t)

	store, err := relayredis.NewStore(mr.Addr(), "", 0)
	require.NoError(t, err, "failed to create Redis store")
	t.Cleanup(func() { store.Close() })

	return mr, store
}
