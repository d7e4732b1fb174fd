package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReceivedTotal counts inbound webhook deliveries by ingestion outcome
	ReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_webhooks_received_total",
			Help: "Inbound webhook deliveries by outcome",
		},
		[]string{"outcome"}, // accepted | unauthenticated | forbidden | malformed | queue_error
	)

	// ForwardsTotal counts worker-side terminal decisions per envelope
	ForwardsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_forwards_total",
			Help: "Envelope forwarding decisions by result",
		},
		[]string{"result"}, // forwarded | duplicate | failed | dropped
	)
)

// MustRegister registers the relay counters with the given registerer
func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		ReceivedTotal,
		ForwardsTotal,
	)
}

// Metrics represents the current state of the relay pipeline.
type Metrics struct {
	// QueueLength is the number of envelopes waiting in the durable queue
	QueueLength int64 `json:"queue_length"`

	// DedupSize is the number of webhook IDs inside the dedup window
	DedupSize int64 `json:"dedup_size"`

	// Workers lists the active forwarding workers
	Workers []WorkerInfo `json:"workers"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// WorkerInfo represents information about an active forwarding worker.
type WorkerInfo struct {
	// WorkerID is a unique identifier for the worker
	WorkerID string `json:"worker_id"`

	// QueueName is the queue this worker is draining
	QueueName string `json:"queue_name"`

	// Status is the current status of the worker (e.g., "idle", "processing")
	Status string `json:"status"`

	// LastHeartbeat is the timestamp of the last heartbeat
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// Collector defines the interface for collecting metrics from the pipeline.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetQueueLength returns the number of envelopes waiting in the queue
	GetQueueLength(ctx context.Context) (int64, error)

	// GetDedupSize returns the number of IDs inside the dedup window
	GetDedupSize(ctx context.Context) (int64, error)

	// GetActiveWorkers returns information about active workers
	GetActiveWorkers(ctx context.Context) ([]WorkerInfo, error)
}
