package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/computerscienceiscool/llm-browser/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		// cobra has already printed the error
		stop()
		os.Exit(1)
	}
}
