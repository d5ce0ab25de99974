package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideaprov/ideaprov/internal/cli"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/pterm/pterm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var reported *cli.ReportedError
		if !stderrors.As(err, &reported) {
			pterm.Error.WithWriter(os.Stderr).Println(errors.UserMessage(err))
		}
		stop()
		os.Exit(1)
	}
}
