package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/service"
)

// AlertRunner periodically matches active job alerts against published
// postings and enqueues digest emails for the ones that are due.
type AlertRunner struct {
	alerts   *service.AlertService
	interval time.Duration
	log      zerolog.Logger

	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

func NewAlertRunner(alerts *service.AlertService, interval time.Duration, log zerolog.Logger) *AlertRunner {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AlertRunner{
		alerts:   alerts,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

func (r *AlertRunner) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run()
	r.log.Info().Dur("interval", r.interval).Msg("alert runner started")
}

func (r *AlertRunner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	r.wg.Wait()
	r.log.Info().Msg("alert runner stopped")
}

func (r *AlertRunner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.send()
		case <-r.stopCh:
			return
		}
	}
}

func (r *AlertRunner) send() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := r.alerts.SendDueAlerts(ctx, time.Now().UTC()); err != nil {
		r.log.Error().Err(err).Msg("alert run failed")
	}
}
