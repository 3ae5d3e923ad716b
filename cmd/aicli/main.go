package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/doeshing/aicli/internal/infrastructure/cli"
	"github.com/doeshing/aicli/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := cli.NewRootCmd(cli.Options{Verbose: logger.VerboseFromEnv()})

	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		cli.RenderError(os.Stderr, err)
	}
	os.Exit(cli.ExitCode(err))
}
