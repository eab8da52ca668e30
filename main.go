package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"navigator/internal/cli"
	"navigator/internal/log"
)

func main() {
	// Set up global panic handler first
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "navigator crashed: %v\n", r)
			os.Exit(cli.ExitFailure)
		}
	}()

	// Blocked console reads cannot observe a cancelled context, so a signal
	// ends the process directly.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	cli.WatchSignals(signalChan, os.Stderr, os.Exit)

	code := cli.Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	signal.Stop(signalChan)
	log.Close()
	os.Exit(code)
}
