package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter              metric.Meter
	queueLengthGauge   metric.Int64ObservableGauge
	dedupSizeGauge     metric.Int64ObservableGauge
	activeWorkersGauge metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"stream-relay",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// Queue depth gauge
	oe.queueLengthGauge, err = oe.meter.Int64ObservableGauge(
		"relay.queue.length",
		metric.WithDescription("Number of envelopes waiting in the durable queue"),
		metric.WithUnit("{envelopes}"),
		metric.WithInt64Callback(oe.observeQueueLength),
	)
	if err != nil {
		return fmt.Errorf("creating queue length gauge: %w", err)
	}

	// Dedup window size gauge
	oe.dedupSizeGauge, err = oe.meter.Int64ObservableGauge(
		"relay.dedup.size",
		metric.WithDescription("Number of webhook IDs inside the deduplication window"),
		metric.WithUnit("{ids}"),
		metric.WithInt64Callback(oe.observeDedupSize),
	)
	if err != nil {
		return fmt.Errorf("creating dedup size gauge: %w", err)
	}

	// Active workers gauge
	oe.activeWorkersGauge, err = oe.meter.Int64ObservableGauge(
		"relay.workers.active",
		metric.WithDescription("Number of active forwarding workers per status"),
		metric.WithUnit("{workers}"),
		metric.WithInt64Callback(oe.observeActiveWorkers),
	)
	if err != nil {
		return fmt.Errorf("creating active workers gauge: %w", err)
	}

	return nil
}

// observeQueueLength is a callback that reports the queue depth
func (oe *OTelExporter) observeQueueLength(ctx context.Context, observer metric.Int64Observer) error {
	length, err := oe.collector.GetQueueLength(ctx)
	if err != nil {
		return err
	}

	observer.Observe(length)
	return nil
}

// observeDedupSize is a callback that reports the dedup window occupancy
func (oe *OTelExporter) observeDedupSize(ctx context.Context, observer metric.Int64Observer) error {
	size, err := oe.collector.GetDedupSize(ctx)
	if err != nil {
		return err
	}

	observer.Observe(size)
	return nil
}

// observeActiveWorkers is a callback that reports active worker counts
func (oe *OTelExporter) observeActiveWorkers(ctx context.Context, observer metric.Int64Observer) error {
	workers, err := oe.collector.GetActiveWorkers(ctx)
	if err != nil {
		return err
	}

	byStatus := make(map[string]int64)
	for _, w := range workers {
		byStatus[w.Status]++
	}

	for status, count := range byStatus {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("worker.status", status),
		))
	}

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
