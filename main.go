package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/PolarWolf314/scrub/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.RootCmd.ExecuteContext(ctx); err != nil {
		cmd.Logger.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
