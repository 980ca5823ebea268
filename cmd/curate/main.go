// cmd/curate/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/law-makers/curate/internal/cli"
	"github.com/rs/zerolog/log"
)

// shutdownGrace bounds how long an interrupted run may take to write its
// output before the process exits anyway.
const shutdownGrace = 5 * time.Second

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Warn().Msg("Interrupt received, shutting down gracefully...")
		time.Sleep(shutdownGrace)
		os.Exit(130)
	}()

	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
