// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - errors.go
// Error taxonomy: configuration errors are fatal and synchronous at
// construction; sink errors are recovered inside the listener loop and only
// ever surface on the fallback writer.

package dispatchlog

import "fmt"

// ConfigError reports an invalid Config field. It is returned synchronously by
// New, before any goroutine or file handle exists; it is never deferred to
// first use.
type ConfigError struct {
	Field  string // the Config field that failed validation
	Reason string // human-readable reason, including the accepted values where enumerable
	Err    error  // underlying cause, if any (e.g. a failed MkdirAll)
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dispatchlog: invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("dispatchlog: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *ConfigError) Unwrap() error { return e.Err }

// SinkError wraps a failure from a single sink write. Listeners report it on
// the fallback writer and keep running; it never terminates the consumer
// goroutine and never propagates to a producer.
type SinkError struct {
	Kind SinkKind
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("dispatchlog: %s sink: %v", e.Kind, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }
