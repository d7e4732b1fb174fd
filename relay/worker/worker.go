package worker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/stream-relay/metrics"
	"github.com/marcelsud/stream-relay/relay"
	"github.com/rs/zerolog"
)

/* Worker drains the durable queue and relays surviving envelopes to the sink
 * Single sequential loop: one envelope is dequeued, dedup-checked and
 * forwarded before the next pop. No error inside an iteration is allowed to
 * terminate the loop; everything converts into a log line plus either an
 * immediate continuation or a short pause
 */

const (
	defaultPollTimeout = 1 * time.Second
	defaultConnBackoff = 5 * time.Second
	defaultErrPause    = 1 * time.Second
)

// Heartbeater publishes worker liveness for the metrics collector
type Heartbeater interface {
	SetWorkerHeartbeat(ctx context.Context, workerID, queueName, status string) error
}

type Worker struct {
	Queue     relay.Queue
	Deduper   relay.Deduper
	Sink      relay.Sink
	QueueName string
	Window    time.Duration

	/* RequeueOnFailure puts items that failed delivery back on the queue
	 * Disabled by default: it trades at-least-once delivery for the risk of
	 * an unbounded reprocessing loop against a persistently failing sink
	 */
	RequeueOnFailure bool

	PollTimeout time.Duration
	ConnBackoff time.Duration
	ErrPause    time.Duration

	WorkerID  string
	Heartbeat Heartbeater // optional
	Logger    zerolog.Logger
}

// New builds a worker with sane defaults
func New(queue relay.Queue, deduper relay.Deduper, sink relay.Sink, queueName string, window time.Duration, logger zerolog.Logger) *Worker {
	return &Worker{
		Queue:       queue,
		Deduper:     deduper,
		Sink:        sink,
		QueueName:   queueName,
		Window:      window,
		PollTimeout: defaultPollTimeout,
		ConnBackoff: defaultConnBackoff,
		ErrPause:    defaultErrPause,
		WorkerID:    uuid.New().String(),
		Logger:      logger,
	}
}

// Run polls the queue until ctx is cancelled. It never returns an error from
// an individual iteration; the only exit path is shutdown.
func (w *Worker) Run(ctx context.Context) {
	if w.PollTimeout <= 0 {
		w.PollTimeout = defaultPollTimeout
	}
	if w.ConnBackoff <= 0 {
		w.ConnBackoff = defaultConnBackoff
	}
	if w.ErrPause <= 0 {
		w.ErrPause = defaultErrPause
	}

	w.Logger.Info().
		Str("worker_id", w.WorkerID).
		Str("queue", w.QueueName).
		Msg("forwarder worker started, waiting for messages")

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info().Str("worker_id", w.WorkerID).Msg("forwarder worker stopped")
			return
		default:
		}

		w.pollOnce(ctx)
	}
}

// pollOnce performs a single dequeue-dedup-forward iteration
func (w *Worker) pollOnce(ctx context.Context) {
	data, err := w.Queue.Dequeue(ctx, w.QueueName, w.PollTimeout)
	if errors.Is(err, relay.ErrEmpty) {
		// Nothing arrived before the timeout
		w.beat(ctx, "idle")
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if relay.IsConnError(err) {
			w.Logger.Error().Err(err).
				Dur("backoff", w.ConnBackoff).
				Msg("queue connection error, backing off")
			w.beat(ctx, "backoff")
			w.pause(ctx, w.ConnBackoff)
			return
		}
		w.Logger.Error().Err(err).Msg("unexpected error polling queue")
		w.pause(ctx, w.ErrPause)
		return
	}

	w.beat(ctx, "processing")
	w.process(ctx, data)
}

func (w *Worker) process(ctx context.Context, data []byte) {
	envelope, err := relay.DecodeEnvelope(data)
	if err != nil {
		// A malformed item can never succeed on retry; drop it
		w.Logger.Error().Err(err).
			Str("raw", truncate(data, 256)).
			Msg("dropping undecodable queue item")
		metrics.ForwardsTotal.WithLabelValues("dropped").Inc()
		return
	}

	if envelope.WebhookID != "" {
		duplicate, err := w.Deduper.Seen(ctx, w.QueueName, envelope.WebhookID)
		if err != nil {
			// Dedup store trouble must not lose the event; forward anyway
			w.Logger.Error().Err(err).
				Str("webhook_id", envelope.WebhookID).
				Msg("dedup check failed, forwarding without suppression")
		} else if duplicate {
			w.Logger.Info().
				Str("webhook_id", envelope.WebhookID).
				Msg("skipping duplicate webhook within dedup window")
			metrics.ForwardsTotal.WithLabelValues("duplicate").Inc()
			return
		} else if err := w.Deduper.Mark(ctx, w.QueueName, envelope.WebhookID, w.Window); err != nil {
			w.Logger.Error().Err(err).
				Str("webhook_id", envelope.WebhookID).
				Msg("marking webhook in dedup window failed")
		}
	}

	if err := w.Sink.Forward(ctx, envelope); err != nil {
		w.Logger.Error().Err(err).
			Str("webhook_id", envelope.WebhookID).
			Msg("failed to forward webhook to sink")
		metrics.ForwardsTotal.WithLabelValues("failed").Inc()

		if w.RequeueOnFailure {
			if err := w.Queue.Enqueue(ctx, w.QueueName, data); err != nil {
				w.Logger.Error().Err(err).
					Str("webhook_id", envelope.WebhookID).
					Msg("re-enqueueing failed webhook")
			}
		}
		return
	}

	w.Logger.Info().
		Str("webhook_id", envelope.WebhookID).
		Msg("webhook forwarded to sink")
	metrics.ForwardsTotal.WithLabelValues("forwarded").Inc()
}

// beat publishes a heartbeat when a Heartbeater is configured.
// Liveness reporting is best-effort and never interrupts the loop.
func (w *Worker) beat(ctx context.Context, status string) {
	if w.Heartbeat == nil {
		return
	}
	if err := w.Heartbeat.SetWorkerHeartbeat(ctx, w.WorkerID, w.QueueName, status); err != nil {
		w.Logger.Debug().Err(err).Msg("publishing worker heartbeat")
	}
}

// pause sleeps for d or until ctx is cancelled, whichever comes first
func (w *Worker) pause(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func truncate(data []byte, max int) string {
	if len(data) <= max {
		return string(data)
	}
	return string(data[:max]) + "..."
}
