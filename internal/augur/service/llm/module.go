package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider"
	"github.com/sibylline/sibyl/internal/pkg/options"
	"github.com/sibylline/sibyl/pkg/logger"
)

// Config holds the configuration for the LLM module.
type Config struct {
	Model *options.ModelOptions

	// OutOfTreeRegistry allows registering additional provider plugins
	// beyond the built-in ones. Similar to K8S scheduler's WithPlugin() mechanism.
	// If nil, only in-tree providers are available.
	OutOfTreeRegistry *provider.Registry
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.Model == nil {
		c.Model = options.NewModelOptions()
	}
	return CompletedConfig{c}
}

// Module resolves provider plugins and builds chat models for the agents.
// A single provider is active per process, selected by the model options.
type Module struct {
	opts *options.ModelOptions

	// Registry holds the merged provider plugin registry.
	Registry *provider.Registry
}

// New creates and initializes the LLM module from a completed config.
// This follows the K8S-style: Config → Complete() → New() pattern.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	logger.Info("[LLM] creating LLM module...")

	// Build provider registry (K8S-style: in-tree + out-of-tree merge).
	registry := provider.NewInTreeRegistry()
	if c.OutOfTreeRegistry != nil {
		if err := registry.Merge(c.OutOfTreeRegistry); err != nil {
			return nil, fmt.Errorf("failed to merge out-of-tree providers: %w", err)
		}
	}
	logger.Info("[LLM] provider registry initialized with %d plugins", registry.Len())

	if _, err := registry.Get(c.Model.Provider); err != nil {
		return nil, fmt.Errorf("configured model provider is unusable: %w", err)
	}
	logger.Info("[LLM] active provider %s, model %s", c.Model.Provider, c.Model.Model)

	return &Module{
		opts:     c.Model,
		Registry: registry,
	}, nil
}

// BuildChatModel builds a fresh Eino BaseChatModel for the configured
// provider. Each call constructs a new instance; callers that want to
// share one model across agents hold on to the returned value.
func (m *Module) BuildChatModel(ctx context.Context) (model.BaseChatModel, error) {
	factory, err := m.Registry.Get(m.opts.Provider)
	if err != nil {
		return nil, err
	}
	return factory().BuildChatModel(ctx, m.opts)
}

// Options exposes the active model options, mainly for logging.
func (m *Module) Options() *options.ModelOptions {
	return m.opts
}
