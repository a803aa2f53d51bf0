package notify

import (
	"context"
	"sync"

	"prelaunch/internal/metrics"
	"prelaunch/internal/model"
)

type job struct {
	ctx context.Context
	sub model.Subscriber
}

// Async hands welcomes to a fixed pool of workers through a bounded queue.
// NotifyWelcome never blocks: when the queue is full the welcome is dropped.
type Async struct {
	d    deliverer
	jobs chan job
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewAsync(opts Options, queueSize, workers int) *Async {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 1
	}

	a := &Async{d: newDeliverer(opts), jobs: make(chan job, queueSize)}
	a.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go a.work()
	}
	return a
}

func (a *Async) work() {
	defer a.wg.Done()
	for j := range a.jobs {
		a.d.deliver(j.ctx, j.sub)
	}
}

func (a *Async) NotifyWelcome(ctx context.Context, sub model.Subscriber) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		a.drop(sub, "closed")
		return
	}

	select {
	case a.jobs <- job{ctx: context.WithoutCancel(ctx), sub: sub}:
	default:
		a.drop(sub, "queue_full")
	}
}

func (a *Async) drop(sub model.Subscriber, reason string) {
	a.d.observe(metrics.WelcomeDropped)
	a.d.log.Warn("notify_event", "event", "welcome_email_dropped", "reason", reason,
		"subscriber_id", sub.ID.Hex(), "email", sub.Email)
}

// Close stops accepting work and waits for queued welcomes to finish or ctx to expire.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.jobs)
	}
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Dispatcher = (*Async)(nil)
