// Command rescrypt encrypts and decrypts resource files in place.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/idelchi/rescrypt/internal/commands"
	"github.com/idelchi/rescrypt/internal/logging"
)

// Global variable for CI stamping.
var version = "unknown - unofficial & generated by unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	root := commands.NewRootCommand(version)

	err := root.ExecuteContext(ctx)

	stop()

	if err != nil {
		logging.New(false, false).Errorf("%v", err)
		os.Exit(1)
	}
}
