package anthropic

import (
	"context"

	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/spi"
	"github.com/sibylline/sibyl/internal/pkg/options"
)

const Name = "anthropic"

// defaultMaxTokens bounds completions when the options leave MaxTokens
// unset. The Anthropic API requires an explicit max_tokens value.
const defaultMaxTokens = 4096

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct{}

func New() spi.ChatModelPlugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

func (p *Plugin) BuildChatModel(ctx context.Context, opts *options.ModelOptions) (model.BaseChatModel, error) {
	temperature := opts.Temperature
	cfg := &einoClaude.Config{
		APIKey:      opts.APIKey,
		Model:       opts.Model,
		MaxTokens:   defaultMaxTokens,
		Temperature: &temperature,
	}

	if opts.MaxTokens != 0 {
		cfg.MaxTokens = opts.MaxTokens
	}

	if opts.BaseURL != "" {
		cfg.BaseURL = &opts.BaseURL
	}

	return einoClaude.NewChatModel(ctx, cfg)
}
