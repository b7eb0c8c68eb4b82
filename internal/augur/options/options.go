// Package options holds the full flag surface of the augur server.
package options

import (
	genericoptions "github.com/sibylline/sibyl/internal/pkg/options"
	"github.com/sibylline/sibyl/internal/pkg/server"
	"github.com/sibylline/sibyl/pkg/utils/cliflag"
	"github.com/sibylline/sibyl/pkg/utils/json"
)

type Options struct {
	GRPCOptions             *genericoptions.GRPCOptions      `json:"grpc"      mapstructure:"grpc"`
	GenericServerRunOptions *genericoptions.ServerRunOptions `json:"serving"   mapstructure:"serving"`
	ModelOptions            *genericoptions.ModelOptions     `json:"models"    mapstructure:"models"`
	StoreOptions            *genericoptions.StoreOptions     `json:"store"     mapstructure:"store"`
	WarehouseOptions        *genericoptions.WarehouseOptions `json:"warehouse" mapstructure:"warehouse"`
	AgentOptions            *genericoptions.AgentOptions     `json:"agents"    mapstructure:"agents"`
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GRPCOptions.AddFlags(fss.FlagSet("grpc"))
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("generic"))
	o.ModelOptions.AddFlags(fss.FlagSet("models"))
	o.StoreOptions.AddFlags(fss.FlagSet("store"))
	o.WarehouseOptions.AddFlags(fss.FlagSet("warehouse"))
	o.AgentOptions.AddFlags(fss.FlagSet("agents"))
	return fss
}

func NewOptions() *Options {
	return &Options{
		GRPCOptions:             genericoptions.NewGRPCOptions(),
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		ModelOptions:            genericoptions.NewModelOptions(),
		StoreOptions:            genericoptions.NewStoreOptions(),
		WarehouseOptions:        genericoptions.NewWarehouseOptions(),
		AgentOptions:            genericoptions.NewAgentOptions(),
	}
}

// Validate collects the validation errors of every option group.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GRPCOptions.Validate()...)
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.ModelOptions.Validate()...)
	errs = append(errs, o.StoreOptions.Validate()...)
	errs = append(errs, o.WarehouseOptions.Validate()...)
	errs = append(errs, o.AgentOptions.Validate()...)
	return errs
}

// ApplyTo applies the run options to the method receiver and returns self.
func (o *Options) ApplyTo(c *server.Config) error {
	return nil
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}

// Complete set default Options.
func (o *Options) Complete() error {
	return nil
}
