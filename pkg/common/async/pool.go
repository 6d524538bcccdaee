// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package async

import (
	"context"
	"sync"
)

// DefaultMaxWorkers of a Pool.
const DefaultMaxWorkers = 4

// Job is a unit of work that can be run by a Pool.
type Job interface {
	Run(ctx context.Context)
}

// JobFunc is a function type implementing the Job interface.
type JobFunc func(ctx context.Context)

// Run the job.
func (f JobFunc) Run(ctx context.Context) {
	f(ctx)
}

// PoolOptions for constructing a new Pool.
type PoolOptions struct {
	MaxWorkers int
}

// Pool runs up to a maximum number of jobs concurrently. All enqueued jobs
// are accepted immediately and run when a worker becomes free.
type Pool struct {
	options  PoolOptions
	queue    *queue
	jobs     sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewPool returns a new pool, provided the PoolOptions.
func NewPool(o PoolOptions) *Pool {
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = DefaultMaxWorkers
	}
	p := &Pool{
		options:  o,
		queue:    newQueue(),
		stopChan: make(chan struct{}),
	}
	for i := 0; i < o.MaxWorkers; i++ {
		go p.runWorker()
	}
	return p
}

// Enqueue a job in the pool.
func (p *Pool) Enqueue(job Job) {
	p.jobs.Add(1)
	p.queue.Enqueue(job)
}

// WaitUntilProcessed blocks until the queue is empty and all workers are
// idle.
func (p *Pool) WaitUntilProcessed() {
	p.jobs.Wait()
}

// Stop terminates the workers. Jobs still in the queue are not run.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
	})
}

func (p *Pool) runWorker() {
	for {
		job := p.queue.Dequeue(p.stopChan)
		if job == nil {
			return
		}
		job.Run(context.TODO())
		p.jobs.Done()
	}
}
