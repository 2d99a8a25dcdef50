// Package cli implements the co2d command tree:
//
//   - serve.go   (serve: load artifacts, HTTP server, watcher, shutdown)
//   - fit.go     (fit: CSV -> artifacts, published atomically)
//   - client.go  (predict, labels, status against a running server)
//   - cobra_root.go (flags, config resolution, command wiring)
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Indirections so tests can observe what a command would run.
var (
	fnServe = runServe
	fnFit   = runFit
)

// errUsage marks argument errors that should exit with status 2.
var errUsage = errors.New("usage")

// MainWithArgs runs the CLI and returns the process exit code.
func MainWithArgs(args []string) int {
	return mainWith(context.Background(), args, os.Stdout, os.Stderr)
}

func mainWith(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := buildRootCmd(stdout, stderr)
	if len(args) == 0 {
		_ = root.Usage()
		return 2
	}
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		if isUsage(err) {
			return 2
		}
		return 1
	}
	return 0
}
