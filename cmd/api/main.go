package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/stream-relay/config"
	"github.com/marcelsud/stream-relay/internal/http/chi"
	"github.com/marcelsud/stream-relay/metrics"
	"github.com/marcelsud/stream-relay/relay"
	relayredis "github.com/marcelsud/stream-relay/relay/redis"
	"github.com/prometheus/client_golang/prometheus"
)

const TIMEOUT = 30 * time.Second

/* Ingestion server: authenticates webhook deliveries and appends them to the
 * durable queue. Forwarding runs in a separate process (cmd/worker); the two
 * share nothing but Redis, so ingestion latency is bounded by the queue
 * append alone
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	store, err := relayredis.NewStore(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer store.Close()
	fmt.Printf("Connected to Redis at %s/%d\n", cfg.RedisAddr(), cfg.RedisDB)

	metrics.MustRegister(prometheus.DefaultRegisterer)
	collector := metrics.NewRedisCollector(store, cfg.WebhookQueueName)
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(ctx)

	s := relay.NewService(store, cfg.WebhookQueueName)
	r := chi.Handlers(s, cfg.StreamAPISecret, store, exporter.ServeHTTP())

	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
