package deepseek

import (
	"context"

	einoDeepseek "github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino/components/model"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/spi"
	"github.com/sibylline/sibyl/internal/pkg/options"
)

const Name = "deepseek"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct{}

func New() spi.ChatModelPlugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

// BuildChatModel uses the dedicated DeepSeek SDK instead of the generic
// OpenAI-compatible path so reasoning content survives the round trip.
func (p *Plugin) BuildChatModel(ctx context.Context, opts *options.ModelOptions) (model.BaseChatModel, error) {
	conf := &einoDeepseek.ChatModelConfig{
		APIKey:             opts.APIKey,
		Model:              opts.Model,
		Temperature:        opts.Temperature,
		ResponseFormatType: einoDeepseek.ResponseFormatTypeText,
	}

	if opts.BaseURL != "" {
		conf.BaseURL = opts.BaseURL
	}

	if opts.MaxTokens != 0 {
		conf.MaxTokens = opts.MaxTokens
	}

	return einoDeepseek.NewChatModel(ctx, conf)
}
