package openai

import (
	"context"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/spi"
	"github.com/sibylline/sibyl/internal/pkg/options"
)

const Name = "openai"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct{}

func New() spi.ChatModelPlugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

// BuildChatModel constructs a chat model against the OpenAI chat
// completions API. A BaseURL override also serves OpenAI-compatible
// gateways.
func (p *Plugin) BuildChatModel(ctx context.Context, opts *options.ModelOptions) (model.BaseChatModel, error) {
	temperature := opts.Temperature
	cfg := &einoOpenAI.ChatModelConfig{
		Model:       opts.Model,
		APIKey:      opts.APIKey,
		MaxTokens:   gptr.Of(4096),
		Temperature: &temperature,
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
		},
	}

	if opts.MaxTokens != 0 {
		cfg.MaxTokens = gptr.Of(opts.MaxTokens)
	}

	// Set BaseURL only for non-default OpenAI endpoints.
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return einoOpenAI.NewChatModel(ctx, cfg)
}
