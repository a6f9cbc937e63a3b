// Package workerpool runs keyed tasks on a fixed number of goroutines with optional request pacing.
package workerpool

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

type Result struct {
	Key string
	Err error
}

type job struct {
	key  string
	task Task
}

type Pool struct {
	workers int
	jobs    chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
	closed  bool
}

func New(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		jobs:    make(chan job, buffer),
	}
}

// SetInterval spaces task starts at least d apart across all workers. d <= 0 removes pacing.
func (p *Pool) SetInterval(d time.Duration) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	if d <= 0 {
		return
	}
	p.ticker = time.NewTicker(d)
	p.rate = p.ticker.C
}

// SetRateLimit is SetInterval expressed in requests per second.
func (p *Pool) SetRateLimit(rps int) {
	if rps <= 0 {
		p.SetInterval(0)
		return
	}
	p.SetInterval(time.Second / time.Duration(rps))
}

// Submit queues a task. It returns false when ctx ends first or the pool is closed.
// Submit and Close are meant to be called from the same producer goroutine.
func (p *Pool) Submit(ctx context.Context, key string, t Task) bool {
	if p == nil || t == nil {
		return false
	}
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return false
	}
	select {
	case p.jobs <- job{key: key, task: t}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.jobs)
}

// Run starts the workers. The returned channel closes once every worker has exited.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers*64)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			first := true
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.jobs:
					if !ok {
						return
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil && !first {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					first = false
					err := j.task(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Key: j.key, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		p.mu.Lock()
		if p.ticker != nil {
			p.ticker.Stop()
			p.ticker = nil
			p.rate = nil
		}
		p.mu.Unlock()
		close(out)
	}()

	return out
}
