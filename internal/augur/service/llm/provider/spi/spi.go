package spi

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/sibylline/sibyl/internal/pkg/options"
)

// ChatModelPlugin is the interface for provider plugins. A plugin turns
// the process model options into an Eino BaseChatModel for one provider
// family (Gemini, OpenAI-compatible gateways, Anthropic, ...).
type ChatModelPlugin interface {
	// Name returns the name of the provider plugin.
	Name() string
	// BuildChatModel builds a BaseChatModel instance from the given options.
	// The returned BaseChatModel supports Generate and Stream; models meant
	// to drive agents must additionally implement ToolCallingChatModel.
	BuildChatModel(ctx context.Context, opts *options.ModelOptions) (model.BaseChatModel, error)
}

// PluginFactory is a function that creates a ChatModelPlugin instance.
type PluginFactory func() ChatModelPlugin
