// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package dispatchlog - sink_email.go
// Email alert sink. Each accepted record becomes one SMTP message sent over a
// fresh STARTTLS session; there is no persistent connection, so the sink needs
// no cross-send locking. Failures never reach the producer: the listener
// reports them on the fallback writer and keeps draining.

package dispatchlog

import (
	"fmt"
	"strings"

	mail "github.com/wneessen/go-mail"
)

// MailSender is the outbound mail collaborator consumed by the email sink.
// The production implementation speaks authenticated SMTP over TLS; tests
// substitute a recording fake.
type MailSender interface {
	Send(subject, body string) error
}

// smtpSender sends one message per call through github.com/wneessen/go-mail,
// opening and tearing down the session inside DialAndSend.
type smtpSender struct {
	host     string
	port     int
	user     string
	password string
	to       []string
}

func (s *smtpSender) Send(subject, body string) error {
	m := mail.NewMsg()
	if err := m.From(s.user); err != nil {
		return err
	}
	if err := m.To(s.to...); err != nil {
		return err
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)

	c, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.user),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return c.DialAndSend(m)
}

// emailSink formats an alert subject and body for each accepted record and
// hands them to the MailSender. The threshold is fixed at critical regardless
// of the gating level string.
type emailSink struct {
	threshold
	name    string
	subject string // static subject override; empty means per-record subject
	sender  MailSender
}

func newEmailSink(name, subject string, sender MailSender) *emailSink {
	return &emailSink{
		threshold: threshold{min: LevelCritical},
		name:      name,
		subject:   subject,
		sender:    sender,
	}
}

func (s *emailSink) Kind() SinkKind { return SinkEmail }

func (s *emailSink) Write(r Record) error {
	subject := s.subject
	if subject == "" {
		subject = fmt.Sprintf("%s alerted on %s", s.name, r.Time.Format(timestampLayout))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s - %s\n", r.Time.Format(timestampLayout), r.Name, r.Level)
	fmt.Fprintf(&b, "%s\n", r.Message)
	if r.File != "" {
		fmt.Fprintf(&b, "%s:%d\n", r.File, r.Line)
	}
	if r.TraceID != "" {
		fmt.Fprintf(&b, "trace_id: %s\n", r.TraceID)
	}
	return s.sender.Send(subject, b.String())
}
