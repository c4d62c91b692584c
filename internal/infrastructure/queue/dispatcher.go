package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/ports"
	"github.com/linkroom/linkroom-api/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes alert deliveries to a fixed set of workers using
// consistent hashing on the account id, so one account's digests are sent
// in order even across overlapping alert runs.
type Dispatcher struct {
	workers []chan ports.AlertDelivery
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AlertDelivery, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AlertDelivery, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a delivery to the worker responsible for its account.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(delivery ports.AlertDelivery) {
	idx := d.shardIndex(delivery.AccountID)
	d.workers[idx] <- delivery
	metrics.AlertQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AlertDelivery) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.Send(ctx, delivery.Email, delivery.Subject, delivery.Body); err != nil {
				metrics.AlertsSentTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("account_id", delivery.AccountID).
					Int("worker_id", id).
					Msg("alert delivery failed")
			} else {
				metrics.AlertsSentTotal.WithLabelValues("sent").Inc()
			}
			metrics.AlertQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
