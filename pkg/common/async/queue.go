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
	"container/list"
	"sync"
)

// queue works like an unlimited channel: jobs are added with Enqueue and
// drained by workers through Dequeue.
type queue struct {
	sync.Mutex
	list *list.List

	// enqueueSignal has a buffer of one so a signal is never lost while
	// the run loop is busy handing out jobs.
	enqueueSignal  chan struct{}
	dequeueChannel chan Job
}

func newQueue() *queue {
	q := &queue{
		list:           list.New(),
		enqueueSignal:  make(chan struct{}, 1),
		dequeueChannel: make(chan Job),
	}
	go q.run()
	return q
}

// Enqueue adds the job and returns immediately.
func (q *queue) Enqueue(job Job) {
	q.Lock()
	q.list.PushBack(job)
	q.Unlock()

	select {
	case q.enqueueSignal <- struct{}{}:
	default:
	}
}

// Dequeue blocks until a job is available or the stop channel fires.
func (q *queue) Dequeue(stopChan <-chan struct{}) Job {
	select {
	case <-stopChan:
		return nil
	case job := <-q.dequeueChannel:
		return job
	}
}

func (q *queue) run() {
	for {
		q.Lock()
		front := q.list.Front()
		if front == nil {
			q.Unlock()
			<-q.enqueueSignal
			continue
		}
		q.list.Remove(front)
		q.Unlock()

		q.dequeueChannel <- front.Value.(Job)
	}
}
