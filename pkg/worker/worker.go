package worker

import (
	"context"
	"hash/fnv"
	"sync"
)

type job[T any] struct {
	Key  string
	Data T
}

// Func is a function that handles a worker job.
type Func[T any] func(ctx context.Context, key string, data T) error

// ErrorFunc reports a failed job to the pool owner.
type ErrorFunc func(key string, err error)

// Pool is a keyed worker pool. Jobs with the same key are always routed to
// the same worker goroutine, so they are handled one at a time in submission
// order, while jobs with different keys may run concurrently.
type Pool[T any] struct {
	handlerFunc Func[T]
	errorFunc   ErrorFunc
	jobs        []chan job[T]
	wg          *sync.WaitGroup
}

// NewPool creates a new keyed worker pool.
func NewPool[T any](workersCount int, handlerFunc Func[T], errorFunc ErrorFunc) *Pool[T] {
	jobs := make([]chan job[T], workersCount)
	for i := range jobs {
		jobs[i] = make(chan job[T])
	}

	return &Pool[T]{
		handlerFunc: handlerFunc,
		errorFunc:   errorFunc,
		jobs:        jobs,
		wg:          &sync.WaitGroup{},
	}
}

// Start starts the number of workers that were passed in constructor.
func (p *Pool[T]) Start(ctx context.Context) {
	for i := range p.jobs {
		p.wg.Add(1)
		go p.worker(ctx, p.jobs[i])
	}
}

func (p *Pool[T]) worker(ctx context.Context, jobs chan job[T]) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}

			err := p.handlerFunc(ctx, job.Key, job.Data)
			if err != nil && p.errorFunc != nil {
				p.errorFunc(job.Key, err)
			}
		}
	}
}

// Stop stops the worker pool after draining the queued jobs.
func (p *Pool[T]) Stop() {
	for i := range p.jobs {
		close(p.jobs[i])
	}
	p.wg.Wait()
}

// AddJob adds a new job to the worker pool. The send is abandoned when the
// context is canceled, so producers do not hang after the workers have exited.
func (p *Pool[T]) AddJob(ctx context.Context, key string, data T) {
	select {
	case <-ctx.Done():
	case p.jobs[p.workerIndex(key)] <- job[T]{Key: key, Data: data}:
	}
}

func (p *Pool[T]) workerIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(p.jobs)))
}
