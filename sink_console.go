// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

package dispatchlog

import (
	"fmt"
	"io"
)

// consoleSink writes one "timestamp - name - LEVEL - message" line per record.
// Failures are not expected on a console stream and get no special handling
// beyond the listener's generic reporting.
type consoleSink struct {
	threshold
	out io.Writer
}

func newConsoleSink(min Level, out io.Writer) *consoleSink {
	return &consoleSink{threshold: threshold{min: min}, out: out}
}

func (s *consoleSink) Kind() SinkKind { return SinkConsole }

func (s *consoleSink) Write(r Record) error {
	_, err := fmt.Fprintf(s.out, "%s - %s - %s - %s\n",
		r.Time.Format(timestampLayout), r.Name, r.Level, r.Message)
	return err
}
