package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yndnr/triemap/internal/cli/command"
	"github.com/yndnr/triemap/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.NewHandler().Context(context.Background())

	err := command.App().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
