package worker

import (
	"sync"

	"github.com/getsentry/sentry-go"
)

// Pool runs submitted jobs on a fixed number of goroutines. A pool with a single worker runs jobs one at a
// time in submission order.
type Pool struct {
	queue chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// New starts a pool with n workers and room for queue pending jobs.
func New(n, queue int) *Pool {
	p := &Pool{queue: make(chan func(), queue)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for f := range p.queue {
		run(f)
	}
}

// run executes a single job. A panicking job is reported to sentry and does not take the worker down.
func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues a job. It blocks while the queue is full.
func (p *Pool) Submit(f func()) {
	p.queue <- f
}

// TrySubmit queues a job unless the queue is full, and reports whether it was queued.
func (p *Pool) TrySubmit(f func()) bool {
	select {
	case p.queue <- f:
		return true
	default:
		return false
	}
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
}
