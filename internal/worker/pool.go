package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Task func(ctx context.Context) error

// Result reports the outcome of the task submitted with the same ID.
type Result struct {
	ID  int
	Err error
}

// Pool runs submitted tasks on a fixed number of goroutines, optionally
// paced by a shared rate limiter.
type Pool struct {
	workers int
	tasks   chan job
	wg      sync.WaitGroup
	limiter *rate.Limiter
	once    sync.Once
}

type job struct {
	id   int
	task Task
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan job, buffer),
	}
}

// SetRateLimit caps task starts across all workers at rps per second. Call
// before Run; rps <= 0 removes the cap.
func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	if rps <= 0 {
		p.limiter = nil
		return
	}
	p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

func (p *Pool) Submit(id int, t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- job{id: id, task: t}
}

// Close stops accepting tasks. Workers drain what is queued and then exit.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.once.Do(func() { close(p.tasks) })
}

// Run starts the workers. The returned channel closes once every worker has
// exited, either because Close was called and the queue drained or because
// ctx was cancelled.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, cap(p.tasks)+p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.tasks:
					if !ok {
						return
					}
					if p.limiter != nil {
						if err := p.limiter.Wait(ctx); err != nil {
							return
						}
					}
					err := j.task(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{ID: j.id, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
