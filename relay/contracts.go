package relay

import (
	"context"
	"errors"
	"fmt"
	"time"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// ErrEmpty is returned by Dequeue when no item arrived before the timeout.
var ErrEmpty = errors.New("queue is empty")

// Queue is a durable FIFO channel decoupling the receiver from the forwarder.
// Implementations must survive process restarts and tolerate concurrent
// producers and consumers.
type Queue interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Enqueue(ctx context.Context, queueName string, data []byte) error
	/* Dequeue blocks up to timeout waiting for the head of the queue
	 * Returns ErrEmpty when nothing arrived, so callers can poll without
	 * treating an idle queue as a failure
	 */
	Dequeue(ctx context.Context, queueName string, timeout time.Duration) ([]byte, error)
	Ping(ctx context.Context) error
	Close() error
}

// Deduper is a set-with-TTL membership service used to suppress re-forwarding
// of a webhook identifier within a bounded window.
type Deduper interface {
	Seen(ctx context.Context, queueName, webhookID string) (bool, error)
	/* Mark adds the identifier and (re)sets the window expiry
	 * The Seen/Mark pair is not atomic across workers; MarkIfUnseen is the
	 * single-round-trip alternative when stronger suppression is wanted
	 */
	Mark(ctx context.Context, queueName, webhookID string, window time.Duration) error
	MarkIfUnseen(ctx context.Context, queueName, webhookID string, window time.Duration) (bool, error)
}

// Sink is the downstream destination for forwarded envelopes
type Sink interface {
	Forward(ctx context.Context, e Envelope) error
}

/* ConnError marks transport-level failures against the queue backend
 * The worker backs off on these instead of hot-looping, while data errors
 * (undecodable items) are dropped immediately
 */
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("queue connection: %v", e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// IsConnError reports whether err is a queue connectivity failure
func IsConnError(err error) bool {
	var ce *ConnError
	return errors.As(err, &ce)
}
