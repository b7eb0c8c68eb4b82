package gemini

import (
	"context"
	"fmt"

	einoGemini "github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/spi"
	"github.com/sibylline/sibyl/internal/pkg/options"
	"google.golang.org/genai"
)

const Name = "gemini"

// defaultBaseURL is the public Gemini API endpoint.
const defaultBaseURL = "https://generativelanguage.googleapis.com/"

// Compile-time check: Plugin implements ChatModelPlugin.
var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct{}

func New() spi.ChatModelPlugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

// BuildChatModel constructs a Gemini chat model through Google's
// generative AI API rather than an OpenAI-compatible gateway.
func (p *Plugin) BuildChatModel(ctx context.Context, opts *options.ModelOptions) (model.BaseChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: defaultBaseURL,
		},
	}

	if opts.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = opts.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client for model %s: %w", opts.Model, err)
	}

	temperature := opts.Temperature
	cfg := &einoGemini.Config{
		Client:      client,
		Model:       opts.Model,
		Temperature: &temperature,
	}

	if opts.MaxTokens != 0 {
		maxTokens := opts.MaxTokens
		cfg.MaxTokens = &maxTokens
	}

	return einoGemini.NewChatModel(ctx, cfg)
}
