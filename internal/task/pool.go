// Package task provides the bounded worker pool that runs service
// operations asynchronously.
package task

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Pool sizing defaults and the hard ceiling on configured values.
const (
	DefaultMinWorkers = 10
	DefaultMaxWorkers = 30
	workerCeiling     = 500
)

// Config holds pool bounds. Zero values fall back to the defaults.
type Config struct {
	MinWorkers int
	MaxWorkers int
}

// sanitized replaces out-of-range bounds with the defaults and clamps the
// minimum to the maximum.
func (c Config) sanitized() Config {
	if c.MaxWorkers <= 0 || c.MaxWorkers > workerCeiling {
		c.MaxWorkers = DefaultMaxWorkers
	}
	if c.MinWorkers <= 0 || c.MinWorkers > workerCeiling {
		c.MinWorkers = DefaultMinWorkers
	}
	if c.MinWorkers > c.MaxWorkers {
		c.MinWorkers = c.MaxWorkers
	}
	return c
}

// Pool executes submitted units of work on a bounded set of workers.
// MinWorkers goroutines are resident; when all are busy, transient workers
// are spawned up to MaxWorkers. Once submitted, work is never cancelled.
type Pool struct {
	cfg    Config
	logger *slog.Logger

	jobs    chan func()
	quit    chan struct{}
	wg      sync.WaitGroup
	running atomic.Int64
	stopped atomic.Bool
}

// NewPool starts a pool with the given bounds. Bounds outside 0..500 are
// replaced with the defaults.
func NewPool(cfg Config, logger *slog.Logger) *Pool {
	cfg = cfg.sanitized()

	p := &Pool{
		cfg:    cfg,
		logger: logger,
		jobs:   make(chan func()),
		quit:   make(chan struct{}),
	}

	for i := 0; i < cfg.MinWorkers; i++ {
		p.wg.Add(1)
		go p.resident()
	}

	logger.Info("worker pool started",
		slog.Int("min_workers", cfg.MinWorkers),
		slog.Int("max_workers", cfg.MaxWorkers),
	)
	return p
}

// MinWorkers returns the effective resident worker count.
func (p *Pool) MinWorkers() int { return p.cfg.MinWorkers }

// MaxWorkers returns the effective worker ceiling.
func (p *Pool) MaxWorkers() int { return p.cfg.MaxWorkers }

func (p *Pool) resident() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			job()
		case <-p.quit:
			return
		}
	}
}

// enqueue hands job to a worker. If every resident worker is busy and the
// pool has headroom, a transient worker runs the job instead of blocking.
// reject is invoked when the pool stops before a worker takes the job.
func (p *Pool) enqueue(job, reject func()) {
	select {
	case p.jobs <- job:
		return
	default:
	}

	if p.grow() {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			defer p.running.Add(-1)
			job()
		}()
		return
	}

	select {
	case p.jobs <- job:
	case <-p.quit:
		p.logger.Warn("worker pool stopped with work still queued")
		reject()
	}
}

// grow reserves a transient worker slot, if any remain.
func (p *Pool) grow() bool {
	for {
		n := p.running.Load()
		if int(n) >= p.cfg.MaxWorkers-p.cfg.MinWorkers {
			return false
		}
		if p.running.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Stop shuts the pool down and waits for in-flight work to finish.
// Submissions after Stop fail their futures immediately.
func (p *Pool) Stop() {
	if p.stopped.CompareAndSwap(false, true) {
		close(p.quit)
	}
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}
