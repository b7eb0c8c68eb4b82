package qwen

import (
	"context"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	einoQwen "github.com/cloudwego/eino-ext/components/model/qwen"
	"github.com/cloudwego/eino/components/model"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/spi"
	"github.com/sibylline/sibyl/internal/pkg/options"
)

const Name = "qwen"

// defaultBaseURL is the DashScope OpenAI-compatible endpoint.
const defaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct{}

func New() spi.ChatModelPlugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

// BuildChatModel uses the dedicated Qwen SDK so DashScope extensions
// such as thinking control stay reachable.
func (p *Plugin) BuildChatModel(ctx context.Context, opts *options.ModelOptions) (model.BaseChatModel, error) {
	conf := &einoQwen.ChatModelConfig{
		APIKey:      opts.APIKey,
		Model:       opts.Model,
		BaseURL:     defaultBaseURL,
		Temperature: gptr.Of(opts.Temperature),
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: "text",
		},
	}

	if opts.BaseURL != "" {
		conf.BaseURL = opts.BaseURL
	}

	if opts.MaxTokens != 0 {
		conf.MaxTokens = gptr.Of(opts.MaxTokens)
	}

	return einoQwen.NewChatModel(ctx, conf)
}
