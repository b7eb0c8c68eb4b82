package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// GRPCOptions are for creating the side gRPC listener.
type GRPCOptions struct {
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`
	BindPort    int    `json:"bind-port"    mapstructure:"bind-port"`
	MaxMsgSize  int    `json:"max-msg-size" mapstructure:"max-msg-size"`
}

// NewGRPCOptions is for creating a GRPCOptions object with default
// parameters.
func NewGRPCOptions() *GRPCOptions {
	return &GRPCOptions{
		BindAddress: "127.0.0.1",
		BindPort:    8001,
		MaxMsgSize:  4 * 1024 * 1024,
	}
}

// Validate verifies flags passed to GRPCOptions.
func (s *GRPCOptions) Validate() []error {
	var errs []error
	if s.BindPort < 0 || s.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("--grpc.bind-port %v must be between 0 and 65535, inclusive. 0 for turning off insecure (HTTP) port", s.BindPort))
	}
	return errs
}

// AddFlags adds flags related to features for a specific api server to
// the specified FlagSet.
func (s *GRPCOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.BindAddress, "grpc.bind-address", s.BindAddress,
		"The IP address on which to serve the gRPC API.")
	fs.IntVar(&s.BindPort, "grpc.bind-port", s.BindPort,
		"The port on which to serve the gRPC API.")
	fs.IntVar(&s.MaxMsgSize, "grpc.max-msg-size", s.MaxMsgSize,
		"gRPC max message size.")
}
