// Package main provides fridgectl, an interactive shell and benchmark
// harness over the fridge concurrent key-value store.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/kvfridge/fridge/internal/cli"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	usr1Ch := make(chan os.Signal, 1)
	signal.Notify(usr1Ch, unix.SIGUSR1)

	exitCode := cli.Run(os.Stdout, os.Stderr, os.Args, os.Environ(), sigCh, usr1Ch)

	os.Exit(exitCode)
}
