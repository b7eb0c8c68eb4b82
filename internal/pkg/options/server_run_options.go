package options

import (
	"fmt"
	"net"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/sibylline/sibyl/internal/pkg/server"
)

// ServerRunOptions contains the options while running a generic api
// server.
type ServerRunOptions struct {
	BindAddress string   `json:"bind-address"     mapstructure:"bind-address"`
	BindPort    int      `json:"bind-port"        mapstructure:"bind-port"`
	Mode        string   `json:"mode"             mapstructure:"mode"`
	Middlewares []string `json:"middlewares"      mapstructure:"middlewares"`
	Profiling   bool     `json:"enable-profiling" mapstructure:"enable-profiling"`
}

// NewServerRunOptions creates a ServerRunOptions with default values.
func NewServerRunOptions() *ServerRunOptions {
	return &ServerRunOptions{
		BindAddress: "0.0.0.0",
		BindPort:    8000,
		Mode:        gin.ReleaseMode,
		Middlewares: []string{"requestid", "logger", "recovery"},
		Profiling:   false,
	}
}

// ApplyTo applies the run options to the method receiver and returns
// self.
func (s *ServerRunOptions) ApplyTo(c *server.Config) error {
	c.Mode = s.Mode
	c.Middlewares = s.Middlewares
	c.EnableProfiling = s.Profiling
	c.InsecureServing = &server.InsecureServingInfo{
		Address: net.JoinHostPort(s.BindAddress, fmt.Sprintf("%d", s.BindPort)),
	}
	return nil
}

// Validate checks validation of ServerRunOptions.
func (s *ServerRunOptions) Validate() []error {
	var errs []error
	if s.BindPort < 1 || s.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("--serving.bind-port %v must be between 1 and 65535", s.BindPort))
	}
	switch s.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("--serving.mode %q must be one of debug, release, test", s.Mode))
	}
	return errs
}

// AddFlags adds flags related to generic serving for a specific
// APIServer to the specified FlagSet.
func (s *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.BindAddress, "serving.bind-address", s.BindAddress,
		"The IP address on which to serve the HTTP API.")
	fs.IntVar(&s.BindPort, "serving.bind-port", s.BindPort,
		"The port on which to serve the HTTP API.")
	fs.StringVar(&s.Mode, "serving.mode", s.Mode,
		"Start the server in a specified server mode. Supported server mode: debug, test, release.")
	fs.StringSliceVar(&s.Middlewares, "serving.middlewares", s.Middlewares,
		"List of allowed middlewares for server, comma separated.")
	fs.BoolVar(&s.Profiling, "serving.enable-profiling", s.Profiling,
		"Expose the pprof profiling endpoints under /debug/pprof.")
}
