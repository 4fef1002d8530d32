// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog is a small asynchronous logging facility for long-running
// applications that must emit diagnostics to several destinations at once
// without letting a slow or failing destination block the application.
//
// A Logger owns one or more dispatch groups. Each group is an unbounded FIFO
// queue drained by exactly one background listener goroutine, which fans every
// record out to the sinks of that group. Producers only ever touch the queue:
// Emit never blocks, never fails visibly, and is safe under unrestricted
// concurrent use.
//
// # Sinks
//
// Three built-in sink kinds cover the common destinations:
//
//   - Console: one "timestamp - name - LEVEL - message" line per record,
//     written to a configurable stream (os.Stderr by default).
//   - Rotating file: one JSON object per line ({time, level, message}),
//     rotated by size with numbered backups (<file>.1 is the newest backup),
//     optionally gzip-compressed.
//   - Email alert: a TLS SMTP message per record, attached only when the
//     configured gating rule holds (see below). Send failures are reported to
//     the fallback writer and never reach the producer.
//
// Additional io.Writer destinations can be attached through Config.Writers,
// each with its own threshold and format.
//
// Every sink carries a severity threshold; a record is delivered to a sink iff
// record.Level >= threshold. On top of the per-sink thresholds the Logger
// computes an acceptance floor, min(console level, file level or critical when
// no file is configured): records below the floor are discarded at the Emit
// boundary and never enqueued.
//
// # Lifecycle
//
// Construction validates the whole configuration up front. A Logger is either
// fully valid or never built; no goroutine or file handle is created before
// validation passes. Start and Stop are explicit:
//
//	lg, err := dispatchlog.New(dispatchlog.Config{
//		Name:         "svc",
//		LogFile:      "/var/log/svc/app.log",
//		ConsoleLevel: "info",
//		FileLevel:    "error",
//	})
//	if err != nil {
//		// invalid level name, uncreatable log directory, ...
//	}
//	lg.Start()
//	defer lg.Stop()
//
//	lg.Info(ctx, "service ready on %s", addr)
//
// Stop enqueues a stop sentinel on every group and blocks until each listener
// has drained everything enqueued before the call. It is idempotent, and a
// stopped Logger is terminal: records emitted afterwards are dropped silently.
// Stop must run before process exit, otherwise queued records are lost.
//
// # Email gating
//
// The email sink is attached at construction time iff all of SMTPUser,
// SMTPHost, SMTPPassword and EmailTo are non-empty AND the configured console
// level string equals LogLevelForEmails. Note that this is a literal string
// comparison of the Logger's own configured level, not a per-record severity
// check; the quirk is preserved deliberately and exercised by the tests. The
// attached sink itself only accepts critical records.
//
// # Timestamps and tracing
//
// Record timestamps come from an xclock.Clock (github.com/trickstertwo/xclock),
// so tests can freeze time. When a log call carries a context with an active
// OpenTelemetry span, the trace ID is captured into the record and surfaces in
// the JSON file line and the email body.
package dispatchlog
