// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

package dispatchlog_test

import (
	"context"
	"os"

	"github.com/phuonguno98/dispatchlog"
)

// Example demonstrates the construct → start → stop lifecycle.
func Example() {
	lg, err := dispatchlog.New(dispatchlog.Config{
		Name:         "example",
		ConsoleLevel: "info",
	})
	if err != nil {
		os.Exit(1)
	}
	lg.Start()
	defer lg.Stop()

	ctx := context.Background()
	lg.Info(ctx, "service ready")
	lg.Warning(ctx, "disk usage at %d%%", 85)

	// Console lines carry timestamps, so no fixed Output is asserted here.
}
