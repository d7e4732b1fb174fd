package splunk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marcelsud/stream-relay/relay"
)

/* Splunk HTTP Event Collector client implementing relay.Sink
 * One synchronous POST per envelope; any non-2xx status or transport error
 * is converted into an error for the worker to log, never a panic
 */

const defaultTimeout = 10 * time.Second

// hecEvent is the HEC wire format wrapping an envelope
type hecEvent struct {
	Event      json.RawMessage `json:"event"`
	Time       int64           `json:"time"`
	Host       string          `json:"host"`
	Source     string          `json:"source"`
	Sourcetype string          `json:"sourcetype"`
	Index      string          `json:"index,omitempty"`
	Fields     hecFields       `json:"fields"`
}

// hecFields are indexed metadata fields extracted by Splunk
type hecFields struct {
	WebhookID string `json:"x_webhook_id"`
	APIKey    string `json:"x_api_key"`
}

type Client struct {
	url        string
	token      string
	meta       Metadata
	httpClient *http.Client
}

// NewClient creates a HEC client for the given collector URL and token
func NewClient(url, token string, meta Metadata) *Client {
	return &Client{
		url:   url,
		token: token,
		meta:  meta,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Forward sends one envelope to the collector.
// The original payload becomes the event body, the receipt time becomes the
// event time, and the webhook identifiers become indexed fields.
func (c *Client) Forward(ctx context.Context, e relay.Envelope) error {
	event := hecEvent{
		Event:      e.OriginalPayload,
		Time:       e.ReceivedAt,
		Host:       c.meta.Host,
		Source:     c.meta.Source,
		Sourcetype: c.meta.Sourcetype,
		Index:      c.meta.Index,
		Fields: hecFields{
			WebhookID: e.WebhookID,
			APIKey:    e.APIKey,
		},
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding HEC event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building HEC request: %w", err)
	}
	req.Header.Set("Authorization", "Splunk "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to HEC: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep the response body in the error so failures are diagnosable
		// from the worker log alone
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("HEC returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
