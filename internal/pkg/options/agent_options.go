package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// AgentOptions bounds the agents' tool loops.
type AgentOptions struct {
	// MaxTurns bounds the single analyst agent.
	MaxTurns int `json:"max-turns" mapstructure:"max-turns"`

	// SQLMaxTurns, AnalyticsMaxTurns and ReportingMaxTurns bound the
	// pipeline stages.
	SQLMaxTurns       int `json:"sql-max-turns"       mapstructure:"sql-max-turns"`
	AnalyticsMaxTurns int `json:"analytics-max-turns" mapstructure:"analytics-max-turns"`
	ReportingMaxTurns int `json:"reporting-max-turns" mapstructure:"reporting-max-turns"`

	// EarlyStopping is the single agent's ceiling policy: "generate"
	// answers from observations collected so far, "force" returns a
	// canned stop message.
	EarlyStopping string `json:"early-stopping" mapstructure:"early-stopping"`
}

// NewAgentOptions creates an AgentOptions with the turn budgets the
// agents were tuned on.
func NewAgentOptions() *AgentOptions {
	return &AgentOptions{
		MaxTurns:          5,
		SQLMaxTurns:       15,
		AnalyticsMaxTurns: 5,
		ReportingMaxTurns: 5,
		EarlyStopping:     "generate",
	}
}

// Validate checks validation of AgentOptions.
func (o *AgentOptions) Validate() []error {
	var errs []error
	for _, v := range []struct {
		name  string
		turns int
	}{
		{"--agents.max-turns", o.MaxTurns},
		{"--agents.sql-max-turns", o.SQLMaxTurns},
		{"--agents.analytics-max-turns", o.AnalyticsMaxTurns},
		{"--agents.reporting-max-turns", o.ReportingMaxTurns},
	} {
		if v.turns < 1 {
			errs = append(errs, fmt.Errorf("%s %d must be at least 1", v.name, v.turns))
		}
	}
	switch o.EarlyStopping {
	case "generate", "force":
	default:
		errs = append(errs, fmt.Errorf("--agents.early-stopping %q must be generate or force", o.EarlyStopping))
	}
	return errs
}

// AddFlags adds flags related to the agents to the specified FlagSet.
func (o *AgentOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxTurns, "agents.max-turns", o.MaxTurns,
		"Maximum tool-call turns for the single analyst agent.")
	fs.IntVar(&o.SQLMaxTurns, "agents.sql-max-turns", o.SQLMaxTurns,
		"Maximum tool-call turns for the pipeline SQL stage.")
	fs.IntVar(&o.AnalyticsMaxTurns, "agents.analytics-max-turns", o.AnalyticsMaxTurns,
		"Maximum tool-call turns for the pipeline analytics stage.")
	fs.IntVar(&o.ReportingMaxTurns, "agents.reporting-max-turns", o.ReportingMaxTurns,
		"Maximum tool-call turns for the pipeline reporting stage.")
	fs.StringVar(&o.EarlyStopping, "agents.early-stopping", o.EarlyStopping,
		"Ceiling policy for the single agent: generate or force.")
}
