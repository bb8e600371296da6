// Command assistant routes questions to document, knowledge, file, code,
// news and general handlers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}
