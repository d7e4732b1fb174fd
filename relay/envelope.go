package relay

import (
	"encoding/json"
	"fmt"
	"time"
)

/* Envelope is the unit placed on the durable queue
 * Uses value semantics as it represents data, not behavior
 * JSON field names match the wire format already present in deployed queues,
 * so a worker built from this package can drain items enqueued by older relays
 */
type Envelope struct {
	ReceivedAt      int64           `json:"timestamp"`
	WebhookID       string          `json:"x_webhook_id"`
	APIKey          string          `json:"x_api_key"`
	OriginalPayload json.RawMessage `json:"original_payload"`
}

// NewEnvelope wraps a decoded webhook payload with receipt metadata.
// The payload must already be valid JSON; raw bytes never reach the queue.
func NewEnvelope(webhookID, apiKey string, payload json.RawMessage, receivedAt time.Time) Envelope {
	return Envelope{
		ReceivedAt:      receivedAt.Unix(),
		WebhookID:       webhookID,
		APIKey:          apiKey,
		OriginalPayload: payload,
	}
}

// Encode serializes the envelope for queue storage
func (e Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return data, nil
}

// DecodeEnvelope parses a queued item back into an Envelope
func DecodeEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}
	return e, nil
}
