package splunk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcelsud/stream-relay/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnvelope() relay.Envelope {
	return relay.NewEnvelope(
		"evt-1",
		"key-abc",
		json.RawMessage(`{"type":"message.new","cid":"messaging:general"}`),
		time.Unix(1700000000, 0),
	)
}

func TestClient_Forward(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the HEC wire format with authorization", func(t *testing.T) {
		var gotAuth, gotContentType string
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"text":"Success","code":0}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "hec-token", DefaultMetadata())

		err := client.Forward(ctx, testEnvelope())
		require.NoError(t, err)

		assert.Equal(t, "Splunk hec-token", gotAuth)
		assert.Equal(t, "application/json", gotContentType)

		var event map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(gotBody, &event))
		assert.JSONEq(t, `{"type":"message.new","cid":"messaging:general"}`, string(event["event"]))
		assert.JSONEq(t, `1700000000`, string(event["time"]))
		assert.JSONEq(t, `"stream-webhook-forwarder"`, string(event["host"]))
		assert.JSONEq(t, `"stream-chat-webhook"`, string(event["source"]))
		assert.JSONEq(t, `"_json"`, string(event["sourcetype"]))
		assert.JSONEq(t, `{"x_webhook_id":"evt-1","x_api_key":"key-abc"}`, string(event["fields"]))
		// No index override configured; the key must be omitted entirely
		_, hasIndex := event["index"]
		assert.False(t, hasIndex)
	})

	t.Run("applies metadata overrides", func(t *testing.T) {
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "hec-token", Metadata{
			Host:       "relay-prod-1",
			Source:     "chat-webhooks",
			Sourcetype: "stream:event",
			Index:      "webhooks",
		})

		require.NoError(t, client.Forward(ctx, testEnvelope()))

		var event map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(gotBody, &event))
		assert.JSONEq(t, `"relay-prod-1"`, string(event["host"]))
		assert.JSONEq(t, `"webhooks"`, string(event["index"]))
	})

	t.Run("non-2xx response is an error carrying the body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"text":"Invalid token","code":4}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "bad-token", DefaultMetadata())

		err := client.Forward(ctx, testEnvelope())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
		assert.Contains(t, err.Error(), "Invalid token")
	})

	t.Run("transport error is returned, not panicked", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // immediately unreachable

		client := NewClient(srv.URL, "hec-token", DefaultMetadata())

		err := client.Forward(ctx, testEnvelope())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "posting to HEC")
	})
}
