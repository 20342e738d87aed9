// Command linkstats queries link-in-bio analytics and renders dashboards.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/linkstats/internal/cli"
	"github.com/rshade/linkstats/pkg/version"
)

// exitInterrupted is the conventional exit code after SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.String())
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	code := exitCode(ctx, err)
	if code == 1 {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return code
}

// exitCode maps the command result to a process exit code.
func exitCode(ctx context.Context, err error) int {
	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}
