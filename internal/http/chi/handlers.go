package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/stream-relay/relay"
)

// Pinger reports live connectivity to the queue backend, used by /health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers sets up the relay API routes
func Handlers(relayService relay.UseCase, sharedSecret string, queue Pinger, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("stream-relay", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Method(http.MethodPost, "/webhook", postWebhook(relayService, sharedSecret))
	r.Method(http.MethodGet, "/health", getHealth(queue))
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	return r
}
