// Package worker runs independent units of work on a bounded goroutine pool
// and reports one tagged outcome per unit. A failing unit never affects the
// others; the batch caller aggregates outcomes without short-circuiting.
package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Task is one isolated unit of work. Run receives the pool context and its
// error is reported verbatim in the matching Outcome.
type Task struct {
	ID  uuid.UUID
	Run func(ctx context.Context) error
}

type Outcome struct {
	ID  uuid.UUID
	Err error
}

type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
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
		tasks:   make(chan Task, buffer),
	}
}

func (p *Pool) Submit(t Task) {
	if p == nil || t.Run == nil {
		return
	}
	p.tasks <- t
}

// Close signals that no further tasks will be submitted. Run's output channel
// closes once in-flight tasks drain.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers and returns the outcome stream. Already-started
// tasks run to completion even when ctx is cancelled; cancellation only stops
// pickup of queued work.
func (p *Pool) Run(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, p.workers*64)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t.Run == nil {
						continue
					}
					out <- Outcome{ID: t.ID, Err: t.Run(ctx)}
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
