package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

/* Service represents the ingestion business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// ErrMalformedPayload indicates the request body was not valid JSON.
// Malformed deliveries are rejected synchronously and never queued.
var ErrMalformedPayload = errors.New("malformed payload")

// UseCase defines the ingestion operations exposed to the HTTP layer
type UseCase interface {
	Accept(ctx context.Context, rawBody []byte, webhookID, apiKey string) error
}

type Service struct {
	Queue     Queue
	QueueName string
}

// NewService creates a new ingestion service with dependency injection
func NewService(queue Queue, queueName string) *Service {
	return &Service{
		Queue:     queue,
		QueueName: queueName,
	}
}

// Accept validates the raw body as JSON, wraps it with receipt metadata and
// appends it to the tail of the durable queue. Signature verification happens
// before this point, in the transport layer, over the exact raw bytes.
func (s *Service) Accept(ctx context.Context, rawBody []byte, webhookID, apiKey string) error {
	if !json.Valid(rawBody) {
		return ErrMalformedPayload
	}

	envelope := NewEnvelope(webhookID, apiKey, json.RawMessage(rawBody), time.Now())

	data, err := envelope.Encode()
	if err != nil {
		return fmt.Errorf("preparing envelope: %w", err)
	}

	if err := s.Queue.Enqueue(ctx, s.QueueName, data); err != nil {
		return fmt.Errorf("queueing webhook: %w", err)
	}

	return nil
}
