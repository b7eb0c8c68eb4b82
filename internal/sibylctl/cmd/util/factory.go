// Package util holds the pieces shared by every sibylctl subcommand.
package util

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// Factory provides the low level pieces subcommands build on, so tests
// and composers can swap transports without touching the commands.
type Factory interface {
	HTTPClient() *http.Client
}

type defaultFactory struct{}

func NewDefaultFactory() Factory {
	return &defaultFactory{}
}

// HTTPClient returns a client with a timeout generous enough for a full
// multi-stage agent run.
func (d *defaultFactory) HTTPClient() *http.Client {
	return &http.Client{Timeout: 300 * time.Second}
}

// CheckErr prints the error to stderr and exits with code 1. A nil
// error is a no-op.
func CheckErr(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
