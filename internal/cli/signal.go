package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"navigator/internal/log"
)

// ExitInterrupted is the status after SIGINT or SIGTERM.
const ExitInterrupted = 130

// WatchSignals ends the process through exit on the first signal received.
// It returns immediately; the watch stops if signals is closed.
func WatchSignals(signals <-chan os.Signal, stderr io.Writer, exit func(int)) {
	go func() {
		sig, ok := <-signals
		if !ok {
			return
		}
		log.Error("SIGNAL RECEIVED", "signal", sig.String(), "stack", string(debug.Stack()))
		fmt.Fprintf(stderr, "\nnavigator: %s\n", sig)
		log.Close()
		exit(ExitInterrupted)
	}()
}
