// Package worker runs the per-profile classification concurrently.
//
// Each worker pulls profile jobs off the queue, classifies them with the
// engine and emits the profile report. Reports carry no shared state, so
// the pool needs no locking beyond the channels themselves; the service
// merges reports into the accumulator in deterministic profile order
// afterward.
package worker

import (
	"context"
	"strconv"
	"sync"

	"github.com/rinkside/crosscheck/internal/adapters/mq/queue"
	"github.com/rinkside/crosscheck/internal/domain/model"
	"github.com/rinkside/crosscheck/internal/engine"
	"github.com/rinkside/crosscheck/pkg/logger"
	"github.com/rinkside/crosscheck/pkg/metrics"
)

// Reconciler classifies one profile. Implemented by the engine.
type Reconciler interface {
	ReconcileProfile(ctx context.Context, id string, profile model.Profile) engine.ProfileReport
}

// Worker processes profile jobs until the queue drains.
type Worker struct {
	queue      *queue.InMemoryQueue
	reconciler Reconciler
	out        chan<- engine.ProfileReport
	name       string

	logger logger.Logger
}

// New creates a worker with configuration options.
func New(q *queue.InMemoryQueue, rec Reconciler, out chan<- engine.ProfileReport, opts ...Option) *Worker {
	w := &Worker{
		queue:      q,
		reconciler: rec,
		out:        out,
		name:       "worker",
		logger:     logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run consumes jobs until the queue is drained or ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Debug(ctx, "worker started", logger.String("worker", w.name))
	defer w.logger.Debug(ctx, "worker stopped", logger.String("worker", w.name))

	for job := range w.queue.Dequeue(ctx) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		report := w.reconciler.ReconcileProfile(ctx, job.ProfileID, job.Profile)

		select {
		case w.out <- report:
		case <-ctx.Done():
			return
		}
	}
}

// Pool manages a fixed set of workers over one queue.
type Pool struct {
	workers []*Worker
	out     chan engine.ProfileReport
	wg      sync.WaitGroup
}

// NewPool creates a pool of count workers emitting on a shared channel.
func NewPool(count int, q *queue.InMemoryQueue, rec Reconciler) *Pool {
	if count < 1 {
		count = 1
	}

	p := &Pool{
		out: make(chan engine.ProfileReport, count),
	}
	for i := 0; i < count; i++ {
		p.workers = append(p.workers, New(q, rec, p.out, WithName("worker-"+strconv.Itoa(i))))
	}

	metrics.UpdateWorkerCount(count)

	return p
}

// Start launches every worker and closes the report channel once all of
// them have drained the queue.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}

	go func() {
		p.wg.Wait()
		close(p.out)
	}()
}

// Reports returns the channel workers emit profile reports on.
func (p *Pool) Reports() <-chan engine.ProfileReport {
	return p.out
}
