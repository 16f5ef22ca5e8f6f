// Package task runs fire-and-forget side effects off the request path.
// Submitting work never blocks the caller beyond the bounded queue, worker
// failures are logged instead of propagated, and a panicking task cannot
// take the process down.
package task

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Task is one unit of background work
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher is a bounded worker pool with an explicit lifecycle. It is
// constructed in main and injected; there is no package-level instance.
type Dispatcher struct {
	queue   chan Task
	workers int
	logger  *zap.Logger

	mu      sync.RWMutex
	running bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc

	dropped atomic.Int64
}

// NewDispatcher creates a dispatcher with the given worker count and queue
// capacity.
func NewDispatcher(workers, queueSize int, logger *zap.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		queue:   make(chan Task, queueSize),
		workers: workers,
		logger:  logger,
	}
}

// Start launches the worker goroutines
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(ctx)
	}
	d.logger.Info("task dispatcher started", zap.Int("workers", d.workers))
}

// Stop drains queued tasks and waits for in-flight work to finish
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.cancel()
	d.logger.Info("task dispatcher stopped", zap.Int64("dropped", d.dropped.Load()))
}

// Submit enqueues a task. When the dispatcher is stopped or the queue is
// full the task is dropped and counted; the caller is never blocked or
// failed, matching the at-least-attempted delivery contract.
func (d *Dispatcher) Submit(t Task) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		d.dropped.Add(1)
		d.logger.Warn("task dropped, dispatcher not running", zap.String("task", t.Name))
		return
	}
	select {
	case d.queue <- t:
	default:
		d.dropped.Add(1)
		d.logger.Warn("task dropped, queue full", zap.String("task", t.Name))
	}
}

// Dropped reports how many tasks were rejected at submission
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *Dispatcher) work(ctx context.Context) {
	defer d.wg.Done()
	for t := range d.queue {
		d.runOne(ctx, t)
	}
}

func (d *Dispatcher) runOne(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("task panicked",
				zap.String("task", t.Name),
				zap.Any("panic", r),
			)
		}
	}()

	if err := t.Run(ctx); err != nil {
		d.logger.Error("task failed",
			zap.String("task", t.Name),
			zap.Error(err),
		)
	}
}
