// Package appshell is the process wrapper shared by pyraseq binaries.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc runs one command line and returns an exit code.
type RunFunc func(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int

// Main cancels the run on SIGINT/SIGTERM and exits with its code. With no
// arguments the help text is shown.
func Main(run RunFunc) {
	os.Exit(runShell(run, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func runShell(run RunFunc, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, stdin, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
