// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Command example demonstrates the dispatchlog facility: a rotating JSON log
// file, an extra lumberjack-rotated destination, and the email gating rule
// exercised with a dry-run mailer.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phuonguno98/dispatchlog"
)

// dryRunMailer prints alerts instead of opening an SMTP session, so the demo
// runs without a mail server.
type dryRunMailer struct{}

func (dryRunMailer) Send(subject, body string) error {
	fmt.Printf("--- would send email ---\nSubject: %s\n%s\n", subject, body)
	return nil
}

func main() {
	// Closed by lg.Stop together with the other sinks.
	audit := dispatchlog.NewLumberjackWriter("example/audit.log", 5, 3, true)

	lg, err := dispatchlog.New(dispatchlog.Config{
		Name:             "example",
		LogFile:          "example/app.log",
		ConsoleLevel:     "critical", // matches LogLevelForEmails, so the email sink attaches
		FileLevel:        "debug",
		MaxLogFileSizeMB: 1,
		BackupCount:      3,
		Compress:         true,

		SMTPUser:     "alerts@example.com",
		SMTPHost:     "smtp.example.com",
		SMTPPassword: "app-password",
		EmailTo:      "oncall@example.com, ops@example.com",
		Mailer:       dryRunMailer{},

		Writers: []dispatchlog.WriterSinkConfig{
			{Name: "audit", Writer: audit, Level: "info", JSON: true},
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("active sinks: %v\n", lg.ActiveSinks())

	lg.Start()
	ctx := context.Background()

	lg.Debug(ctx, "file sink only, console is gated at critical")
	for i := 0; i < 1000; i++ {
		lg.Info(ctx, "routine work item %d", i)
	}
	lg.Critical(ctx, "payment backend unreachable")

	lg.Stop()

	written, discarded, sinkErrs, _ := lg.Stats()
	fmt.Printf("written=%d discarded=%d sinkErrs=%d\n", written, discarded, sinkErrs)
}
