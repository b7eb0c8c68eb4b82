package ollama

import (
	"context"

	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/spi"
	"github.com/sibylline/sibyl/internal/pkg/options"
)

const Name = "ollama"

// defaultBaseURL points at a locally running ollama daemon.
const defaultBaseURL = "http://127.0.0.1:11434"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct{}

func New() spi.ChatModelPlugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

func (p *Plugin) BuildChatModel(ctx context.Context, opts *options.ModelOptions) (model.BaseChatModel, error) {
	conf := &einoOllama.ChatModelConfig{
		BaseURL: defaultBaseURL,
		Model:   opts.Model,
		Options: &einoOllama.Options{
			Temperature: opts.Temperature,
		},
	}

	if opts.BaseURL != "" {
		conf.BaseURL = opts.BaseURL
	}

	return einoOllama.NewChatModel(ctx, conf)
}
