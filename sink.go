// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - sink.go
// The common sink contract: a threshold plus a write capability. The set of
// implementations is closed (console, rotating file, email, writer); all of
// them are owned by the Logger that built them and never outlive their
// listener.

package dispatchlog

// SinkKind identifies one of the supported destination kinds, as reported by
// Logger.ActiveSinks.
type SinkKind string

const (
	SinkConsole SinkKind = "console"
	SinkFile    SinkKind = "file"
	SinkEmail   SinkKind = "email"
	SinkWriter  SinkKind = "writer"
)

// Sink is a configured destination for log records. Write is only ever called
// from the single listener goroutine of the sink's group, so implementations
// do not need to be safe for concurrent writes.
type Sink interface {
	Kind() SinkKind
	// Accepts reports whether the record meets the sink's threshold:
	// record.Level >= threshold, with no exceptions.
	Accepts(r Record) bool
	Write(r Record) error
}

// threshold implements the Accepts rule shared by every sink.
type threshold struct {
	min Level
}

func (t threshold) Accepts(r Record) bool { return r.Level >= t.min }
