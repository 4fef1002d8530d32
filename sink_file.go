// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - sink_file.go
// Size-rotated JSON-lines file sink. Each record becomes one JSON object per
// line; when the next write would push the file past its size limit the sink
// rotates first, shifting numbered backups (<file>.1 is the newest) and
// dropping the oldest beyond the backup count.

package dispatchlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// fileEntry is the on-disk shape of a record: one UTF-8 JSON object per line.
type fileEntry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

type fileSink struct {
	threshold
	path     string
	maxBytes int64
	backups  int
	compress bool

	file *os.File
	size int64

	// rotateLock guards rotation against other processes sharing the same log
	// file. Nil unless Config.LockRotation is set.
	rotateLock *flock.Flock
}

// newFileSink opens (or creates) the primary log file in append mode. Parent
// directories are created recursively; any failure here is a configuration
// error raised before the sink is usable.
func newFileSink(path string, min Level, maxBytes int64, backups int, compress, lockRotation bool) (*fileSink, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &ConfigError{
			Field:  "LogFile",
			Reason: "cannot create log directory",
			Err:    errors.Wrapf(err, "mkdir %s", dir),
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &ConfigError{
			Field:  "LogFile",
			Reason: "cannot open log file",
			Err:    errors.Wrapf(err, "open %s", path),
		}
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &ConfigError{
			Field:  "LogFile",
			Reason: "cannot stat log file",
			Err:    errors.Wrapf(err, "stat %s", path),
		}
	}
	s := &fileSink{
		threshold: threshold{min: min},
		path:      path,
		maxBytes:  maxBytes,
		backups:   backups,
		compress:  compress,
		file:      f,
		size:      st.Size(),
	}
	if lockRotation {
		s.rotateLock = flock.New(path + ".lock")
	}
	return s, nil
}

func (s *fileSink) Kind() SinkKind { return SinkFile }

// Write encodes the record and appends it, rotating first when the encoded
// line would push the file past maxBytes. Only the listener goroutine of the
// sink's group calls Write, so the file handle needs no locking.
func (s *fileSink) Write(r Record) error {
	entry := fileEntry{
		Time:    r.Time.Format(time.RFC3339),
		Level:   r.Level.String(),
		Message: r.Message,
		TraceID: r.TraceID,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	line = append(line, '\n')

	// The size > 0 guard keeps a single oversized record from rotating an
	// empty file forever.
	if s.size > 0 && s.size+int64(len(line)) > s.maxBytes {
		if err := s.rotate(); err != nil {
			return err
		}
	}

	n, err := s.file.Write(line)
	s.size += int64(n)
	if err != nil {
		return errors.Wrapf(err, "append %s", s.path)
	}
	return nil
}

// rotate shifts <file>.k to <file>.k+1 for every retained backup, moves the
// primary to <file>.1 (gzipped when compression is on), and reopens a fresh
// primary. The advisory lock, when configured, is held for the whole shift so
// two processes sharing the file cannot interleave renames.
func (s *fileSink) rotate() error {
	if s.rotateLock != nil {
		if err := s.rotateLock.Lock(); err != nil {
			return errors.Wrap(err, "acquire rotation lock")
		}
		defer func() { _ = s.rotateLock.Unlock() }()
	}

	ext := ""
	if s.compress {
		ext = ".gz"
	}

	// Drop the oldest backup, then shift the rest up by one index.
	oldest := fmt.Sprintf("%s.%d%s", s.path, s.backups, ext)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", oldest)
	}
	for k := s.backups - 1; k >= 1; k-- {
		from := fmt.Sprintf("%s.%d%s", s.path, k, ext)
		to := fmt.Sprintf("%s.%d%s", s.path, k+1, ext)
		if err := os.Rename(from, to); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "rename %s", from)
		}
	}

	if err := s.file.Close(); err != nil {
		return errors.Wrapf(err, "close %s", s.path)
	}

	var moveErr error
	first := s.path + ".1" + ext
	if s.compress {
		if moveErr = gzipFile(s.path, first); moveErr == nil {
			moveErr = errors.Wrapf(os.Remove(s.path), "remove %s", s.path)
		}
	} else {
		moveErr = errors.Wrapf(os.Rename(s.path, first), "rename %s", s.path)
	}
	if moveErr != nil {
		// Reopen in append mode so the sink stays usable; the failed shift is
		// reported and retried on the next size check.
		f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			s.file = f
		}
		return moveErr
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "reopen %s", s.path)
	}
	s.file = f
	s.size = 0
	return nil
}

// gzipFile compresses src into dst.
func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "open %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}
	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		_ = gz.Close()
		_ = out.Close()
		return errors.Wrapf(err, "compress %s", src)
	}
	if err := gz.Close(); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "finish %s", dst)
	}
	return errors.Wrapf(out.Close(), "close %s", dst)
}

// Close releases the file handle. Called by the Logger after the owning
// listener has drained.
func (s *fileSink) Close() error {
	return s.file.Close()
}
