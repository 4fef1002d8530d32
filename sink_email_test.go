// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

package dispatchlog

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeMailer records sent messages and can simulate SMTP failures.
type fakeMailer struct {
	mu       sync.Mutex
	subjects []string
	bodies   []string
	failWith error
}

func (m *fakeMailer) Send(subject, body string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *fakeMailer) sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subjects)
}

func TestEmailSinkOnlyAcceptsCritical(t *testing.T) {
	s := newEmailSink("svc", "", &fakeMailer{})
	require.False(t, s.Accepts(Record{Level: LevelError}))
	require.True(t, s.Accepts(Record{Level: LevelCritical}))
}

func TestEmailSinkSubjectAndBody(t *testing.T) {
	m := &fakeMailer{}
	s := newEmailSink("svc", "", m)

	rec := Record{
		Time:    time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Level:   LevelCritical,
		Name:    "svc",
		Message: "db gone",
		File:    "/src/app/main.go",
		Line:    42,
		TraceID: "4bf92f3577b34da6a3ce929d0e0e4736",
	}
	require.NoError(t, s.Write(rec))
	require.Equal(t, 1, m.sent())

	require.Equal(t, "svc alerted on 2025-03-14 09:26:53,000", m.subjects[0])
	require.Contains(t, m.bodies[0], "svc - CRITICAL")
	require.Contains(t, m.bodies[0], "db gone")
	require.Contains(t, m.bodies[0], "/src/app/main.go:42")
	require.Contains(t, m.bodies[0], "trace_id: 4bf92f3577b34da6a3ce929d0e0e4736")
}

func TestEmailSinkStaticSubjectOverride(t *testing.T) {
	m := &fakeMailer{}
	s := newEmailSink("svc", "ops alert", m)
	require.NoError(t, s.Write(Record{Time: time.Now(), Level: LevelCritical, Name: "svc", Message: "x"}))
	require.Equal(t, "ops alert", m.subjects[0])
}

func TestEmailSinkSendFailureSurfacesAsError(t *testing.T) {
	m := &fakeMailer{failWith: fmt.Errorf("535 authentication failed")}
	s := newEmailSink("svc", "", m)
	err := s.Write(Record{Time: time.Now(), Level: LevelCritical, Name: "svc", Message: "x"})
	require.ErrorContains(t, err, "authentication failed")
}

func TestSplitRecipients(t *testing.T) {
	require.Equal(t, []string{"a@x.io", "b@x.io"}, splitRecipients("a@x.io, b@x.io"))
	require.Equal(t, []string{"a@x.io"}, splitRecipients("a@x.io,"))
	require.Empty(t, splitRecipients(""))
}
