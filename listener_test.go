// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

package dispatchlog

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// memorySink is a test sink recording every accepted record. It can be
// configured to fail or panic on demand.
type memorySink struct {
	threshold
	mu       sync.Mutex
	records  []Record
	failWith error
	panicMsg string
}

func newMemorySink(min Level) *memorySink {
	return &memorySink{threshold: threshold{min: min}}
}

func (s *memorySink) Kind() SinkKind { return SinkWriter }

func (s *memorySink) Write(r Record) error {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.failWith != nil {
		return s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *memorySink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.Message
	}
	return out
}

func TestListenerFansOutByThreshold(t *testing.T) {
	q := newRecordQueue()
	low := newMemorySink(LevelDebug)
	high := newMemorySink(LevelError)
	var errs atomicI64
	ln := newListener(q, []Sink{low, high}, &bytes.Buffer{}, &errs)
	ln.start()

	q.enqueue(Record{Level: LevelInfo, Message: "info"})
	q.enqueue(Record{Level: LevelError, Message: "error"})
	ln.stop()

	require.Equal(t, []string{"info", "error"}, low.messages())
	require.Equal(t, []string{"error"}, high.messages())
}

func TestListenerStopDrainsEverythingEnqueuedBefore(t *testing.T) {
	q := newRecordQueue()
	sink := newMemorySink(LevelDebug)
	var errs atomicI64
	ln := newListener(q, []Sink{sink}, &bytes.Buffer{}, &errs)
	ln.start()

	const n = 1000
	for i := 0; i < n; i++ {
		q.enqueue(Record{Level: LevelInfo, Message: fmt.Sprintf("m%d", i)})
	}
	ln.stop()

	require.Equal(t, n, sink.count())
	// In the exact enqueue order.
	msgs := sink.messages()
	require.Equal(t, "m0", msgs[0])
	require.Equal(t, fmt.Sprintf("m%d", n-1), msgs[n-1])
}

func TestListenerStopIsIdempotent(t *testing.T) {
	q := newRecordQueue()
	sink := newMemorySink(LevelDebug)
	var errs atomicI64
	ln := newListener(q, []Sink{sink}, &bytes.Buffer{}, &errs)
	ln.start()
	q.enqueue(Record{Level: LevelInfo, Message: "once"})

	ln.stop()
	ln.stop()
	ln.stop()

	require.Equal(t, 1, sink.count())
}

func TestListenerStopWithoutStartDoesNotBlock(t *testing.T) {
	q := newRecordQueue()
	var errs atomicI64
	ln := newListener(q, nil, &bytes.Buffer{}, &errs)
	ln.stop() // must return immediately
	ln.stop()
}

func TestListenerSinkErrorIsReportedNotFatal(t *testing.T) {
	q := newRecordQueue()
	broken := newMemorySink(LevelDebug)
	broken.failWith = fmt.Errorf("disk full")
	healthy := newMemorySink(LevelDebug)
	fallback := &bytes.Buffer{}
	var errs atomicI64
	ln := newListener(q, []Sink{broken, healthy}, fallback, &errs)
	ln.start()

	q.enqueue(Record{Level: LevelInfo, Message: "a"})
	q.enqueue(Record{Level: LevelInfo, Message: "b"})
	ln.stop()

	// The failing sink never stopped the consumer or starved its peers.
	require.Equal(t, 2, healthy.count())
	require.Equal(t, int64(2), errs.Load())
	require.Contains(t, fallback.String(), "disk full")
}

func TestListenerRecoversSinkPanic(t *testing.T) {
	q := newRecordQueue()
	angry := newMemorySink(LevelDebug)
	angry.panicMsg = "boom"
	healthy := newMemorySink(LevelDebug)
	fallback := &bytes.Buffer{}
	var errs atomicI64
	ln := newListener(q, []Sink{angry, healthy}, fallback, &errs)
	ln.start()

	q.enqueue(Record{Level: LevelInfo, Message: "survive"})
	ln.stop()

	require.Equal(t, 1, healthy.count())
	require.Contains(t, fallback.String(), "boom")
}
