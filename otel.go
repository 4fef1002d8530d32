// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - otel.go
// OpenTelemetry integration: records emitted with a context that carries an
// active span get the trace ID stamped on them, so log lines can be correlated
// with traces in the file sink and email alerts.

package dispatchlog

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// traceIDFromContext extracts the trace ID of the current span, or "" when the
// context carries no valid span context.
func traceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.HasTraceID() {
			return sc.TraceID().String()
		}
	}
	return ""
}
