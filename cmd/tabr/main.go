package main

import (
	stderrors "errors"
	"fmt"
	"os"

	errors "github.com/go-tabr/tabr/errors"
)

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	code := exitCode(err)
	if code == exitFailure {
		fmt.Fprintf(os.Stderr, "tabr: %v\n", err)
	}
	os.Exit(code)
}

const (
	exitFailure     = 1
	exitInterrupted = 130 // 128 + SIGINT
	exitClosedSink  = 141 // 128 + SIGPIPE
)

// exitCode maps run outcomes onto exit statuses. Interruption and a
// consumer-closed sink terminate non-zero but without diagnostic noise.
func exitCode(err error) int {
	var interrupted errors.InterruptedError
	var closed errors.ClosedSinkError
	switch {
	case stderrors.As(err, &interrupted):
		return exitInterrupted
	case stderrors.As(err, &closed):
		return exitClosedSink
	default:
		return exitFailure
	}
}
