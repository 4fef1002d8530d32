// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - listener.go
// The background consumer bound to one queue and a fixed set of sinks. Its
// lifecycle is created → running → stopped and terminal; a stopped listener is
// never restarted.

package dispatchlog

import (
	"fmt"
	"io"
	"sync"
)

type listenerState int32

const (
	listenerCreated listenerState = iota
	listenerRunning
	listenerStopped
)

// listener drains its queue in enqueue order and fans each record out to
// every sink whose threshold it meets. Sink failures and panics are reported
// on the fallback writer and never escape the consumer goroutine.
type listener struct {
	queue    *recordQueue
	sinks    []Sink
	fallback io.Writer
	sinkErrs *atomicI64 // shared with the owning Logger

	mu      sync.Mutex
	state   listenerState
	started bool // the consumer goroutine was spawned at some point
	done    chan struct{}
}

func newListener(q *recordQueue, sinks []Sink, fallback io.Writer, sinkErrs *atomicI64) *listener {
	return &listener{
		queue:    q,
		sinks:    sinks,
		fallback: fallback,
		sinkErrs: sinkErrs,
		done:     make(chan struct{}),
	}
}

// start spawns the single consumer goroutine. Calling start on a listener
// that is already running or stopped is a no-op.
func (ln *listener) start() {
	ln.mu.Lock()
	defer ln.mu.Unlock()
	if ln.state != listenerCreated {
		return
	}
	ln.state = listenerRunning
	ln.started = true
	go ln.run()
}

func (ln *listener) run() {
	defer close(ln.done)
	for {
		r, ok := ln.queue.dequeue()
		if !ok {
			// Sentinel observed after the queue drained.
			return
		}
		ln.dispatch(r)
	}
}

// dispatch forwards one record to every accepting sink. Each write runs under
// a recover so a panicking sink cannot take the consumer down with it.
func (ln *listener) dispatch(r Record) {
	for _, s := range ln.sinks {
		if !s.Accepts(r) {
			continue
		}
		ln.writeOne(s, r)
	}
}

func (ln *listener) writeOne(s Sink, r Record) {
	defer func() {
		if rec := recover(); rec != nil {
			ln.report(&SinkError{Kind: s.Kind(), Err: fmt.Errorf("panic: %v", rec)})
		}
	}()
	if err := s.Write(r); err != nil {
		ln.report(&SinkError{Kind: s.Kind(), Err: err})
	}
}

func (ln *listener) report(err error) {
	ln.sinkErrs.Add(1)
	fmt.Fprintf(ln.fallback, "%v\n", err)
}

// stop enqueues the stop sentinel and blocks until the consumer goroutine has
// drained every record enqueued before the call and exited. Idempotent; on a
// listener that never started it only marks the terminal state. Stop can stall
// for as long as the slowest in-flight sink write (a hanging SMTP send holds
// shutdown up): cancellation is cooperative only.
func (ln *listener) stop() {
	ln.mu.Lock()
	started := ln.started
	ln.state = listenerStopped
	ln.mu.Unlock()

	ln.queue.close()
	if started {
		<-ln.done
	}
}
