package runtime

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/sibylline/sibyl/pkg/logger"
)

// modelLogCallback is the Eino callbacks.Handler attached to each agent
// invocation. Step recording happens in tracedTool, so this handler only
// surfaces model and graph activity in the logs.
type modelLogCallback struct {
	role string
}

func newModelLogCallback(role string) *modelLogCallback {
	return &modelLogCallback{role: role}
}

// Build returns the Eino callbacks.Handler.
func (m *modelLogCallback) Build() callbacks.Handler {
	return callbacks.NewHandlerBuilder().
		OnStartFn(m.OnStart).
		OnEndFn(m.OnEnd).
		OnEndWithStreamOutputFn(m.OnEndWithStreamOutput).
		OnErrorFn(m.OnError).
		Build()
}

func (m *modelLogCallback) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	switch info.Component {
	case components.ComponentOfChatModel:
		logger.Debug("[Engine/%s] model call started", m.role)
	case compose.ComponentOfToolsNode:
		logger.Debug("[Engine/%s] tools node started: %s", m.role, info.Name)
	}
	return ctx
}

func (m *modelLogCallback) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	if info.Component != components.ComponentOfChatModel {
		return ctx
	}
	if cbOut := model.ConvCallbackOutput(output); cbOut != nil && cbOut.Message != nil && cbOut.Message.Content != "" {
		logger.Debug("[Engine/%s] model replied: %s", m.role, cbOut.Message.Content)
	}
	return ctx
}

// OnEndWithStreamOutput drains streaming outputs so the graph can finish.
// Model text is concatenated and logged at debug; other component streams
// are closed unread.
func (m *modelLogCallback) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo, output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
	switch info.Component {
	case compose.ComponentOfGraph, components.ComponentOfChatModel:
		go m.drainModelStream(output)
	default:
		if output != nil {
			(*output).Close()
		}
	}
	return ctx
}

func (m *modelLogCallback) drainModelStream(output *schema.StreamReader[callbacks.CallbackOutput]) {
	if output == nil {
		return
	}
	sr := schema.StreamReaderWithConvert(output, func(t callbacks.CallbackOutput) (*schema.Message, error) {
		cbOut := model.ConvCallbackOutput(t)
		if cbOut == nil || cbOut.Message == nil {
			return nil, nil
		}
		return cbOut.Message, nil
	})

	var text strings.Builder
	for {
		msg, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("[Engine/%s] model stream error: %v", m.role, err)
			break
		}
		if msg != nil && msg.Content != "" {
			text.WriteString(msg.Content)
		}
	}
	if text.Len() > 0 {
		logger.Debug("[Engine/%s] model replied: %s", m.role, text.String())
	}
}

func (m *modelLogCallback) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	logger.Warn("[Engine/%s] error in %s/%s: %v", m.role, info.Component, info.Name, err)
	return ctx
}
