package util

import "io"

// IOStreams holds the standard streams a command reads and writes, so
// tests can capture output.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}
