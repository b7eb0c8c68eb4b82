package app

import "github.com/sibylline/sibyl/pkg/utils/cliflag"

// CliOptions abstracts configuration options for reading parameters from
// the command line.
type CliOptions interface {
	Flags() (fss cliflag.NamedFlagSets)
	Validate() []error
}

// CompleteableOptions abstracts options which can fill in defaults.
type CompleteableOptions interface {
	Complete() error
}

// PrintableOptions abstracts options which can be printed.
type PrintableOptions interface {
	String() string
}
