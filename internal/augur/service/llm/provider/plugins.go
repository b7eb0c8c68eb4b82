package provider

import (
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/anthropic"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/deepseek"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/gemini"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/ollama"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/openai"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/qwen"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/spi"
)

func NewInTreeRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(anthropic.Name, func() spi.ChatModelPlugin { return anthropic.New() })
	r.MustRegister(openai.Name, func() spi.ChatModelPlugin { return openai.New() })
	r.MustRegister(gemini.Name, func() spi.ChatModelPlugin { return gemini.New() })
	r.MustRegister(deepseek.Name, func() spi.ChatModelPlugin { return deepseek.New() })
	r.MustRegister(qwen.Name, func() spi.ChatModelPlugin { return qwen.New() })
	r.MustRegister(ollama.Name, func() spi.ChatModelPlugin { return ollama.New() })
	return r
}
