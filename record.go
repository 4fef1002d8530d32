// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

package dispatchlog

import "time"

// Record is the immutable value that travels through a dispatch queue. It is
// created once per Emit call, owned by the queue until a listener consumes it,
// and discarded after every sink in the group has processed it.
type Record struct {
	Time    time.Time
	Level   Level
	Name    string // identity of the emitting Logger
	Message string

	// Source location of the log call, when it could be captured.
	File string
	Line int

	// TraceID is the OpenTelemetry trace ID extracted from the call context,
	// empty when the context carries no active span.
	TraceID string
}

// timestampLayout is the console and email timestamp format,
// "2006-01-02 15:04:05,123" with a comma before the milliseconds.
const timestampLayout = "2006-01-02 15:04:05,000"
