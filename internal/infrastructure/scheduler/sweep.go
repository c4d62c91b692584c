package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/service"
)

// SweepRunner periodically hides job postings that have aged past the
// retention window or passed their explicit expiry.
type SweepRunner struct {
	jobs      *service.JobService
	interval  time.Duration
	retention time.Duration
	log       zerolog.Logger

	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

func NewSweepRunner(jobs *service.JobService, interval, retention time.Duration, log zerolog.Logger) *SweepRunner {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &SweepRunner{
		jobs:      jobs,
		interval:  interval,
		retention: retention,
		log:       log,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the sweep loop. Calling Start on a running runner is a no-op.
func (r *SweepRunner) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run()
	r.log.Info().Dur("interval", r.interval).Dur("retention", r.retention).Msg("job sweep runner started")
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (r *SweepRunner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	r.wg.Wait()
	r.log.Info().Msg("job sweep runner stopped")
}

func (r *SweepRunner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep()
	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stopCh:
			return
		}
	}
}

func (r *SweepRunner) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	hidden, err := r.jobs.ExpireJobs(ctx, time.Now().UTC(), r.retention)
	if err != nil {
		r.log.Error().Err(err).Msg("job sweep failed")
		return
	}
	if hidden > 0 {
		r.log.Info().Int64("hidden", hidden).Msg("job sweep hid stale postings")
	}
}
