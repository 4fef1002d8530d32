// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - queue.go
// Unbounded FIFO of records, the hand-off point between producers and a
// listener. Enqueue never blocks the caller; Dequeue blocks the listener until
// an item or the stop sentinel is available. Unbounded capacity is a
// deliberate simplicity choice: there is no designed enqueue failure, and
// bounding plus backpressure are a documented future extension.

package dispatchlog

import "sync"

// recordQueue is safe for any number of concurrent producers and one consumer.
// The stop sentinel is modeled as a closed flag that the consumer only
// observes once every record enqueued before close has been drained, which
// preserves strict FIFO semantics around shutdown.
type recordQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Record
	closed bool
}

func newRecordQueue() *recordQueue {
	q := &recordQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// enqueue appends a record. The critical section is a bounded append; the
// producer never waits on the consumer. Records offered after close are
// dropped: the sentinel is already in line ahead of them.
func (q *recordQueue) enqueue(r Record) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, r)
	q.mu.Unlock()
	q.cond.Signal()
}

// dequeue blocks until a record or the sentinel is available. It returns
// ok=false only after the queue is closed and fully drained.
func (q *recordQueue) dequeue() (Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) > 0 {
		r := q.items[0]
		q.items = q.items[1:]
		return r, true
	}
	return Record{}, false
}

// close enqueues the stop sentinel. Idempotent.
func (q *recordQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// len reports the number of records waiting, for stats.
func (q *recordQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
