package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/stream-relay/config"
	"github.com/marcelsud/stream-relay/metrics"
	relayredis "github.com/marcelsud/stream-relay/relay/redis"
	"github.com/marcelsud/stream-relay/relay/splunk"
	"github.com/marcelsud/stream-relay/relay/worker"
	"github.com/prometheus/client_golang/prometheus"
)

/* Forwarder process: drains the durable queue and relays envelopes to
 * Splunk HEC. Runs until SIGINT/SIGTERM; every failure inside the loop is
 * logged and absorbed, never fatal
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	logger := httplog.NewLogger("relay-worker", httplog.Options{
		JSON: true,
	})

	store, err := relayredis.NewStore(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error().Err(err).Msg("connecting to Redis")
		os.Exit(1)
	}
	defer store.Close()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	meta := splunk.DefaultMetadata()
	if cfg.HECMetadataFile != "" {
		meta, err = splunk.LoadMetadata(cfg.HECMetadataFile)
		if err != nil {
			logger.Error().Err(err).Msg("loading HEC metadata file")
			os.Exit(1)
		}
	}
	sink := splunk.NewClient(cfg.SplunkHECURL, cfg.SplunkHECToken, meta)

	w := worker.New(store, store, sink, cfg.WebhookQueueName, cfg.DedupWindow(), logger)
	w.RequeueOnFailure = cfg.RequeueOnFailure
	w.Heartbeat = store

	w.Run(ctx)
}
