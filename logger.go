// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - logger.go
// The Logger façade: configuration, construction-time validation, sink wiring
// (including the email gating rule), and the explicit start/stop lifecycle.

package dispatchlog

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xclock"
)

const (
	// defaultMaxFileSizeMB is the rotation limit applied when
	// Config.MaxLogFileSizeMB is zero.
	defaultMaxFileSizeMB = 10
	// defaultBackupCount matches the historical fixed backup count.
	defaultBackupCount = 5
	// defaultSMTPPort is the STARTTLS submission port.
	defaultSMTPPort = 587
	// megabyte converts Config.MaxLogFileSizeMB to bytes.
	megabyte = 1 << 20
)

// Config is the full construction-time configuration of a Logger. Everything
// is validated by New; a Logger is either fully valid or never built.
type Config struct {
	// Name is the identity string stamped on every record. Required.
	Name string

	// LogFile is the path of the rotating JSON log file. Empty disables the
	// file sink entirely.
	LogFile string

	// ConsoleLevel and FileLevel are sink thresholds as level names, one of
	// debug, info, warning, error, critical, none (case-insensitive).
	// Defaults: "info" and "error".
	ConsoleLevel string
	FileLevel    string

	// MaxLogFileSizeMB is the rotation limit in megabytes (×1,048,576 bytes).
	// Zero means 10; negative values are rejected.
	MaxLogFileSizeMB int
	// BackupCount is the number of rotated backups to retain. Zero means 5;
	// negative values are rejected.
	BackupCount int
	// Compress gzips rotated backups (<file>.1.gz and so on).
	Compress bool
	// LockRotation holds a cross-process advisory lock (<file>.lock) while
	// rotating, for deployments where several processes share the log path.
	LockRotation bool

	// SMTP settings for the email alert sink. The sink is attached iff
	// SMTPUser, SMTPHost, SMTPPassword and EmailTo are all non-empty AND the
	// normalized ConsoleLevel string equals LogLevelForEmails.
	SMTPUser     string
	SMTPHost     string
	SMTPPassword string
	SMTPPort     int // zero means 587
	// EmailTo is a comma-separated recipient list.
	EmailTo string
	// EmailSubject overrides the per-record subject when non-empty.
	EmailSubject string
	// LogLevelForEmails is the gating level string. Zero value means "critical".
	LogLevelForEmails string

	// ConsoleWriter receives console lines. Defaults to os.Stderr.
	ConsoleWriter io.Writer
	// FallbackWriter receives the Logger's own diagnostics (sink failures,
	// recovered panics). Defaults to os.Stderr.
	FallbackWriter io.Writer

	// Writers attaches extra io.Writer destinations to the main group.
	Writers []WriterSinkConfig

	// Clock supplies record timestamps. Defaults to xclock.Default().
	Clock xclock.Clock

	// Mailer overrides the SMTP implementation of the email sink. Intended as
	// a test seam; nil selects the real go-mail sender.
	Mailer MailSender
}

// Logger is the façade owning the dispatch queues, listeners and sinks it
// creates. Sinks never outlive their listener; the Logger controls the whole
// construct → start → stop lifecycle.
type Logger struct {
	name  string
	floor Level
	clock xclock.Clock

	mainQueue  *recordQueue
	mainGroup  *listener
	emailQueue *recordQueue // nil unless the gating rule held
	emailGroup *listener

	sinks    []Sink // all sinks across groups, for introspection and closing
	fallback io.Writer

	startOnce sync.Once
	stopOnce  sync.Once

	written   atomicI64
	discarded atomicI64
	sinkErrs  atomicI64
}

// New validates cfg and builds the Logger. No goroutine is spawned and Start
// must be called separately. The error, when non-nil, is always a *ConfigError.
func New(cfg Config) (*Logger, error) {
	if cfg.Name == "" {
		return nil, &ConfigError{Field: "Name", Reason: "must be a non-empty identity string"}
	}

	consoleName := strings.ToLower(cfg.ConsoleLevel)
	if consoleName == "" {
		consoleName = "info"
	}
	fileName := strings.ToLower(cfg.FileLevel)
	if fileName == "" {
		fileName = "error"
	}
	consoleLevel, err := ParseLevel("ConsoleLevel", consoleName)
	if err != nil {
		return nil, err
	}
	fileLevel, err := ParseLevel("FileLevel", fileName)
	if err != nil {
		return nil, err
	}

	if cfg.MaxLogFileSizeMB < 0 {
		return nil, &ConfigError{Field: "MaxLogFileSizeMB", Reason: "must be a positive integer"}
	}
	maxSizeMB := cfg.MaxLogFileSizeMB
	if maxSizeMB == 0 {
		maxSizeMB = defaultMaxFileSizeMB
	}
	if cfg.BackupCount < 0 {
		return nil, &ConfigError{Field: "BackupCount", Reason: "must not be negative"}
	}
	backups := cfg.BackupCount
	if backups == 0 {
		backups = defaultBackupCount
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = defaultSMTPPort
	}
	emailGate := cfg.LogLevelForEmails
	if emailGate == "" {
		emailGate = "critical"
	}

	var consoleOut io.Writer = cfg.ConsoleWriter
	if consoleOut == nil {
		consoleOut = os.Stderr
	}
	var fallback io.Writer = cfg.FallbackWriter
	if fallback == nil {
		fallback = os.Stderr
	}
	clock := cfg.Clock
	if clock == nil {
		clock = xclock.Default()
	}

	// The acceptance floor: nothing below it is ever enqueued. Without a file
	// sink the file contribution is pinned at critical.
	fileFloor := LevelCritical
	if cfg.LogFile != "" {
		fileFloor = fileLevel
	}
	floor := minLevel(consoleLevel, fileFloor)

	mainSinks := []Sink{newConsoleSink(consoleLevel, consoleOut)}

	if cfg.LogFile != "" {
		fs, err := newFileSink(cfg.LogFile, fileLevel,
			int64(maxSizeMB)*megabyte, backups, cfg.Compress, cfg.LockRotation)
		if err != nil {
			return nil, err
		}
		mainSinks = append(mainSinks, fs)
	}

	for _, wc := range cfg.Writers {
		if wc.Writer == nil {
			return nil, &ConfigError{Field: "Writers", Reason: "writer must not be nil"}
		}
		lvlName := wc.Level
		if lvlName == "" {
			lvlName = "debug"
		}
		lvl, err := ParseLevel("Writers", lvlName)
		if err != nil {
			return nil, err
		}
		name := wc.Name
		if name == "" {
			name = "writer"
		}
		mainSinks = append(mainSinks, &writerSink{
			threshold: threshold{min: lvl},
			name:      name,
			out:       wc.Writer,
			json:      wc.JSON,
		})
		// Extra writers can sit below the console/file floor; widen it so
		// they actually see their records.
		floor = minLevel(floor, lvl)
	}

	l := &Logger{
		name:      cfg.Name,
		floor:     floor,
		clock:     clock,
		mainQueue: newRecordQueue(),
		fallback:  fallback,
	}
	l.mainGroup = newListener(l.mainQueue, mainSinks, fallback, &l.sinkErrs)
	l.sinks = append(l.sinks, mainSinks...)

	// Email gating: all four SMTP fields non-empty AND the configured console
	// level string equals the email gating string. This is a literal,
	// construction-time string comparison on the Logger's own chosen level,
	// not a per-record severity check. Preserved as-is; see the package docs.
	if cfg.SMTPUser != "" && cfg.SMTPHost != "" && cfg.SMTPPassword != "" && cfg.EmailTo != "" &&
		consoleName == emailGate {
		sender := cfg.Mailer
		if sender == nil {
			sender = &smtpSender{
				host:     cfg.SMTPHost,
				port:     port,
				user:     cfg.SMTPUser,
				password: cfg.SMTPPassword,
				to:       splitRecipients(cfg.EmailTo),
			}
		}
		es := newEmailSink(cfg.Name, cfg.EmailSubject, sender)
		l.emailQueue = newRecordQueue()
		l.emailGroup = newListener(l.emailQueue, []Sink{es}, fallback, &l.sinkErrs)
		l.sinks = append(l.sinks, es)
	}

	return l, nil
}

// splitRecipients turns a comma-separated recipient list into addresses,
// trimming whitespace and skipping empty entries.
func splitRecipients(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Start launches the listener goroutine of every group the Logger owns.
// Safe to call once; further calls are no-ops.
func (l *Logger) Start() {
	l.startOnce.Do(func() {
		l.mainGroup.start()
		if l.emailGroup != nil {
			l.emailGroup.start()
		}
	})
}

// Stop drains every group: it enqueues the stop sentinel on each queue and
// blocks until the listeners have delivered everything enqueued before the
// call, then closes any closable sinks. Groups are independent and stopped in
// no particular order. Idempotent, and terminal: a stopped Logger drops all
// further records.
func (l *Logger) Stop() {
	l.stopOnce.Do(func() {
		l.mainGroup.stop()
		if l.emailGroup != nil {
			l.emailGroup.stop()
		}
		for _, s := range l.sinks {
			if c, ok := s.(io.Closer); ok {
				if err := c.Close(); err != nil {
					l.sinkErrs.Add(1)
					reportClose(l.fallback, s.Kind(), err)
				}
			}
		}
	})
}

// ActiveSinks returns the sorted set of sink kinds attached to this Logger,
// for introspection and tests.
func (l *Logger) ActiveSinks() []SinkKind {
	seen := make(map[SinkKind]bool, len(l.sinks))
	kinds := make([]SinkKind, 0, len(l.sinks))
	for _, s := range l.sinks {
		if !seen[s.Kind()] {
			seen[s.Kind()] = true
			kinds = append(kinds, s.Kind())
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Floor returns the effective minimum severity the Logger enqueues at all.
func (l *Logger) Floor() Level { return l.floor }

// Stats returns a snapshot of the Logger's counters: records enqueued,
// records discarded below the floor, sink write failures, and records still
// waiting in the main queue.
func (l *Logger) Stats() (written, discarded, sinkErrs int64, queued int) {
	return l.written.Load(), l.discarded.Load(), l.sinkErrs.Load(), l.mainQueue.len()
}

// reportClose writes a close failure to the fallback writer.
func reportClose(w io.Writer, kind SinkKind, err error) {
	se := &SinkError{Kind: kind, Err: err}
	_, _ = io.WriteString(w, se.Error()+"\n")
}

// atomicI64 is a small counter wrapper shared between the Logger and its
// listeners.
type atomicI64 struct{ v int64 }

func (a *atomicI64) Add(delta int64) { atomic.AddInt64(&a.v, delta) }
func (a *atomicI64) Load() int64     { return atomic.LoadInt64(&a.v) }
