package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"crescendo/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(1)
		}
		var exit *exitCodeError
		if errors.As(err, &exit) {
			if exit.message != "" {
				fmt.Fprintln(os.Stderr, exit.message)
			}
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(services.ExitCode(err))
	}
}

// exitCodeError carries a specific process exit code out of a command.
// A rejected source is the usual producer: it is not a hard error, but
// the process still signals the verdict.
type exitCodeError struct {
	code    int
	message string
}

func (e *exitCodeError) Error() string {
	return e.message
}

func newExitCode(code int, message string) error {
	return &exitCodeError{code: code, message: message}
}
