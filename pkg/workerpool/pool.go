// Package workerpool runs work on a fixed set of goroutines.
//
// Handoff to a worker is unbuffered, so at most Size tasks run at once and
// callers of Do wait for a free worker. This bounds outbound concurrency
// (for example calls to the generative-text API) under bursty load.
//
//	pool := workerpool.New(8)
//	defer pool.Shutdown()
//
//	err := pool.Do(ctx, func() { text, genErr = client.Generate(ctx, prompt) })
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Do after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// ErrTaskPanicked is returned by Do when the task panicked. The worker
// survives.
var ErrTaskPanicked = errors.New("workerpool: task panicked")

type job struct {
	run  func()
	done chan error
}

// Pool is a fixed-size goroutine pool.
type Pool struct {
	size    int
	jobs    chan job
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
}

// New starts size workers. A size below 1 is treated as 1.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		size:    size,
		jobs:    make(chan job),
		closeCh: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Size is the number of workers.
func (p *Pool) Size() int { return p.size }

// Do runs task on a worker and waits for it to finish. It gives up waiting
// for a free worker when ctx is done or the pool is shut down; once a worker
// has taken the task Do always waits for it.
func (p *Pool) Do(ctx context.Context, task func()) error {
	j := job{run: task, done: make(chan error, 1)}

	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- j:
	}
	return <-j.done
}

// Shutdown stops the workers after their current task. Waiting callers of Do
// get ErrPoolClosed. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case j := <-p.jobs:
			j.done <- safeRun(j.run)
		case <-p.closeCh:
			return
		}
	}
}

func safeRun(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	task()
	return nil
}
