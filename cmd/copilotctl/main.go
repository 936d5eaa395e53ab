// Command copilotctl is the operator CLI for the reading copilot: offline
// segmentation and annotation, article import, migrations and batch analysis.
//
// Database commands read the same configuration as the server (CONFIG_PATH
// and environment variables).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
