// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - sink_writer.go
// Generic io.Writer destinations. These ride the main dispatch group alongside
// the console and file sinks, each with its own threshold and line format.

package dispatchlog

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// WriterSinkConfig attaches an arbitrary io.Writer as an extra destination.
type WriterSinkConfig struct {
	// Name identifies the writer in fallback diagnostics. Defaults to "writer".
	Name string
	// Writer is the destination. Required. If it implements io.Closer it is
	// closed by Logger.Stop after the listener has drained.
	Writer io.Writer
	// Level is the sink threshold as a level name. Empty means "debug".
	Level string
	// JSON selects the JSON-lines record format instead of the console line.
	JSON bool
}

type writerSink struct {
	threshold
	name string
	out  io.Writer
	json bool
}

func (s *writerSink) Kind() SinkKind { return SinkWriter }

func (s *writerSink) Write(r Record) error {
	if s.json {
		line, err := json.Marshal(fileEntry{
			Time:    r.Time.Format(time.RFC3339),
			Level:   r.Level.String(),
			Message: r.Message,
			TraceID: r.TraceID,
		})
		if err != nil {
			return err
		}
		_, err = s.out.Write(append(line, '\n'))
		return err
	}
	_, err := fmt.Fprintf(s.out, "%s - %s - %s - %s\n",
		r.Time.Format(timestampLayout), r.Name, r.Level, r.Message)
	return err
}

// Close closes the underlying writer when it is closable. Called by
// Logger.Stop after the listener has drained.
func (s *writerSink) Close() error {
	if c, ok := s.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewLumberjackWriter returns a size-rotated io.WriteCloser with lumberjack's
// timestamped backup naming, for callers who want an extra file destination
// with those semantics instead of the numbered-backup scheme of the built-in
// file sink. Pass it through Config.Writers.
func NewLumberjackWriter(filename string, maxSizeMB, maxBackups int, compress bool) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   compress,
	}
}
