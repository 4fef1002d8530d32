// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - emit.go
// Producer-side entry points. Emit and its level helpers are the only
// operations producers call: they never block beyond the bounded enqueue
// critical section, never fail visibly, and are safe under unrestricted
// concurrent use.

package dispatchlog

import (
	"context"
	"fmt"
	"runtime"
)

// Emit enqueues a record at the given level, or discards it when the level is
// below the Logger's floor. The message is formatted printf-style when args
// are present.
func (l *Logger) Emit(level Level, format string, args ...interface{}) {
	l.log(context.Background(), level, format, args...)
}

// EmitContext is Emit with a context. When the context carries an active
// OpenTelemetry span, the trace ID is captured into the record.
func (l *Logger) EmitContext(ctx context.Context, level Level, format string, args ...interface{}) {
	l.log(ctx, level, format, args...)
}

// Debug logs a message at the debug level.
func (l *Logger) Debug(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelDebug, format, args...)
}

// Info logs a message at the info level.
func (l *Logger) Info(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelInfo, format, args...)
}

// Warning logs a message at the warning level.
func (l *Logger) Warning(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelWarning, format, args...)
}

// Error logs a message at the error level.
func (l *Logger) Error(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelError, format, args...)
}

// Critical logs a message at the critical level.
func (l *Logger) Critical(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelCritical, format, args...)
}

// log builds the record and hands it to every group. Records below the floor
// (and records at LevelNone, which is not an emittable severity) are rejected
// here, before reaching any queue.
func (l *Logger) log(ctx context.Context, level Level, format string, args ...interface{}) {
	if level <= LevelNone || level < l.floor {
		l.discarded.Add(1)
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	rec := Record{
		Time:    l.clock.Now(),
		Level:   level,
		Name:    l.name,
		Message: msg,
		TraceID: traceIDFromContext(ctx),
	}
	// Two frames up: log ← public wrapper ← caller.
	if _, file, line, ok := runtime.Caller(2); ok {
		rec.File = file
		rec.Line = line
	}

	l.written.Add(1)
	l.mainQueue.enqueue(rec)
	if l.emailQueue != nil {
		l.emailQueue.enqueue(rec)
	}
}
