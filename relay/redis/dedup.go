package redis

import (
	"context"
	"time"

	"github.com/marcelsud/stream-relay/relay"
)

/* Duplicate suppression backed by a Redis Set with TTL
 * Membership of processed:{queue_name} means "already attempted or in-flight
 * within the dedup window"; the whole set expires together, so the window
 * slides forward with every Mark
 */

// Seen reports whether webhookID was already marked within the current window
func (s *Store) Seen(ctx context.Context, queueName, webhookID string) (bool, error) {
	member, err := s.client.SIsMember(ctx, dedupKey(queueName), webhookID).Result()
	if err != nil {
		return false, &relay.ConnError{Err: err}
	}
	return member, nil
}

// Mark records webhookID and (re)sets the window expiry.
// The Seen/Mark pair is not atomic: two workers racing on the same ID can
// both pass Seen before either Mark lands. That is accepted best-effort
// behavior; use MarkIfUnseen when a single round-trip decision is needed.
func (s *Store) Mark(ctx context.Context, queueName, webhookID string, window time.Duration) error {
	key := dedupKey(queueName)
	if err := s.client.SAdd(ctx, key, webhookID).Err(); err != nil {
		return &relay.ConnError{Err: err}
	}
	if err := s.client.Expire(ctx, key, window).Err(); err != nil {
		return &relay.ConnError{Err: err}
	}
	return nil
}

// DedupSize returns the number of identifiers currently in the window,
// used by the metrics collector
func (s *Store) DedupSize(ctx context.Context, queueName string) (int64, error) {
	size, err := s.client.SCard(ctx, dedupKey(queueName)).Result()
	if err != nil {
		return 0, &relay.ConnError{Err: err}
	}
	return size, nil
}

// MarkIfUnseen atomically adds webhookID, reporting whether it was new.
// SADD's return value makes the membership decision a single atomic step,
// closing the check-then-set race of the Seen/Mark pair.
func (s *Store) MarkIfUnseen(ctx context.Context, queueName, webhookID string, window time.Duration) (bool, error) {
	key := dedupKey(queueName)
	added, err := s.client.SAdd(ctx, key, webhookID).Result()
	if err != nil {
		return false, &relay.ConnError{Err: err}
	}
	if err := s.client.Expire(ctx, key, window).Err(); err != nil {
		return false, &relay.ConnError{Err: err}
	}
	return added > 0, nil
}
