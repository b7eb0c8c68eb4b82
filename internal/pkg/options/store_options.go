package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// knownStoreTypes are the trace persistence backends.
var knownStoreTypes = []string{"elastic", "boltdb", "inmemory", "disabled"}

// StoreOptions configures where agent run traces are persisted.
type StoreOptions struct {
	Type           string `json:"type"            mapstructure:"type"`
	ElasticAddr    string `json:"elastic-addr"    mapstructure:"elastic-addr"`
	ElasticIndex   string `json:"elastic-index"   mapstructure:"elastic-index"`
	ElasticAPIKey  string `json:"elastic-api-key" mapstructure:"elastic-api-key"`
	ElasticRefresh string `json:"elastic-refresh" mapstructure:"elastic-refresh"`
	BoltDBPath     string `json:"boltdb-path"     mapstructure:"boltdb-path"`
}

// NewStoreOptions creates a StoreOptions with default values. The
// elastic defaults match a local single-node cluster; when it is not
// reachable the server degrades to disabled trace storage.
func NewStoreOptions() *StoreOptions {
	return &StoreOptions{
		Type:         "elastic",
		ElasticAddr:  "http://localhost:9200",
		ElasticIndex: "agent_traces",
		BoltDBPath:   "data/sibyl.db",
	}
}

// Validate checks validation of StoreOptions.
func (o *StoreOptions) Validate() []error {
	var errs []error
	valid := false
	for _, t := range knownStoreTypes {
		if o.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("unknown trace store type %q, must be one of %v", o.Type, knownStoreTypes))
	}
	switch o.ElasticRefresh {
	case "", "true", "false", "wait_for":
	default:
		errs = append(errs, fmt.Errorf("--store.elastic-refresh %q must be one of true, false, wait_for", o.ElasticRefresh))
	}
	return errs
}

// AddFlags adds flags related to trace storage to the specified FlagSet.
func (o *StoreOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Type, "store.type", o.Type,
		"Trace store backend: elastic, boltdb, inmemory or disabled.")
	fs.StringVar(&o.ElasticAddr, "store.elastic-addr", o.ElasticAddr,
		"Elasticsearch base URL for trace storage.")
	fs.StringVar(&o.ElasticIndex, "store.elastic-index", o.ElasticIndex,
		"Elasticsearch index trace documents are written to.")
	fs.StringVar(&o.ElasticAPIKey, "store.elastic-api-key", o.ElasticAPIKey,
		"API key sent with every Elasticsearch request.")
	fs.StringVar(&o.ElasticRefresh, "store.elastic-refresh", o.ElasticRefresh,
		"Per-write refresh policy: true, false or wait_for. Empty uses the index default.")
	fs.StringVar(&o.BoltDBPath, "store.boltdb-path", o.BoltDBPath,
		"File path for BoltDB trace storage.")
}
