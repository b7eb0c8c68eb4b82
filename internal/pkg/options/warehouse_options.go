package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// WarehouseOptions configures the sqlite warehouse the agents query.
type WarehouseOptions struct {
	// Path is the sqlite database path. ":memory:" seeds the bundled
	// sample sales dataset.
	Path string `json:"path" mapstructure:"path"`

	// MaxOpenConns caps the connection pool for file-backed databases.
	MaxOpenConns int `json:"max-open-conns" mapstructure:"max-open-conns"`
}

// NewWarehouseOptions creates a WarehouseOptions with default values.
func NewWarehouseOptions() *WarehouseOptions {
	return &WarehouseOptions{
		Path:         ":memory:",
		MaxOpenConns: 4,
	}
}

// Validate checks validation of WarehouseOptions.
func (o *WarehouseOptions) Validate() []error {
	var errs []error
	if o.Path == "" {
		errs = append(errs, fmt.Errorf("--warehouse.path must not be empty"))
	}
	if o.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("--warehouse.max-open-conns %d must not be negative", o.MaxOpenConns))
	}
	return errs
}

// AddFlags adds flags related to the warehouse to the specified FlagSet.
func (o *WarehouseOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Path, "warehouse.path", o.Path,
		"Sqlite database path. \":memory:\" seeds the bundled sample dataset.")
	fs.IntVar(&o.MaxOpenConns, "warehouse.max-open-conns", o.MaxOpenConns,
		"Maximum open connections for file-backed databases.")
}
