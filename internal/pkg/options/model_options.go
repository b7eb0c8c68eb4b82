package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// knownProviders are the chat model backends the LLM module can build.
var knownProviders = []string{"gemini", "openai", "anthropic", "deepseek", "ollama", "qwen"}

// ModelOptions selects and configures the chat model powering the
// agents. A single provider is active per process.
type ModelOptions struct {
	Provider    string  `json:"provider"    mapstructure:"provider"`
	Model       string  `json:"model"       mapstructure:"model"`
	APIKey      string  `json:"api-key"     mapstructure:"api-key"`
	BaseURL     string  `json:"base-url"    mapstructure:"base-url"`
	Temperature float32 `json:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `json:"max-tokens"  mapstructure:"max-tokens"`
}

// NewModelOptions returns the gemini defaults the agents were tuned on.
func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		Provider:    "gemini",
		Model:       "gemini-2.5-flash",
		Temperature: 0.1,
		MaxTokens:   4096,
	}
}

func (o *ModelOptions) Validate() []error {
	var errs []error
	valid := false
	for _, p := range knownProviders {
		if o.Provider == p {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("unknown model provider %q, must be one of %v", o.Provider, knownProviders))
	}
	if o.Model == "" {
		errs = append(errs, fmt.Errorf("model id is required"))
	}
	if o.Temperature < 0 || o.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %v must be within [0, 2]", o.Temperature))
	}
	return errs
}

func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Provider, "models.provider", o.Provider,
		"Chat model provider: gemini, openai, anthropic, deepseek, ollama or qwen.")
	fs.StringVar(&o.Model, "models.model", o.Model, "Model ID used by all agents.")
	fs.StringVar(&o.APIKey, "models.api-key", o.APIKey, "API key for the model provider.")
	fs.StringVar(&o.BaseURL, "models.base-url", o.BaseURL,
		"Override the provider endpoint (OpenAI-compatible gateways, local ollama, etc).")
	fs.Float32Var(&o.Temperature, "models.temperature", o.Temperature, "Sampling temperature.")
	fs.IntVar(&o.MaxTokens, "models.max-tokens", o.MaxTokens, "Maximum tokens per completion.")
}
