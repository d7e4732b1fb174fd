package chi

import (
	"errors"
	"io"
	"net/http"

	"github.com/marcelsud/stream-relay/metrics"
	"github.com/marcelsud/stream-relay/relay"
	"github.com/marcelsud/stream-relay/relay/signature"
)

/* Ingestion endpoint: authenticate, wrap, enqueue
 * The handler must see the exact raw body bytes the sender signed; parsing
 * happens only after the signature check passed
 * Senders are expected to retry the whole delivery on a 5xx response
 */

// postWebhook handles POST /webhook
func postWebhook(relayService relay.UseCase, sharedSecret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawBody, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		presented := r.Header.Get("X-Signature")
		if presented == "" {
			metrics.ReceivedTotal.WithLabelValues("unauthenticated").Inc()
			http.Error(w, "Missing X-Signature header", http.StatusUnauthorized)
			return
		}

		if !signature.Verify(rawBody, presented, sharedSecret) {
			metrics.ReceivedTotal.WithLabelValues("forbidden").Inc()
			http.Error(w, "Invalid X-Signature", http.StatusForbidden)
			return
		}

		webhookID := r.Header.Get("X-Webhook-Id")
		apiKey := r.Header.Get("X-Api-Key")

		err = relayService.Accept(r.Context(), rawBody, webhookID, apiKey)
		if errors.Is(err, relay.ErrMalformedPayload) {
			metrics.ReceivedTotal.WithLabelValues("malformed").Inc()
			http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
			return
		}
		if err != nil {
			// No internal retry; the sender retries the whole delivery
			metrics.ReceivedTotal.WithLabelValues("queue_error").Inc()
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		metrics.ReceivedTotal.WithLabelValues("accepted").Inc()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
