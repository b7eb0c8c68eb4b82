package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"

	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
	"github.com/sibylline/sibyl/pkg/logger"
)

// Early stopping methods decide what happens when an agent exhausts its
// turn budget before producing an answer.
const (
	// EarlyStoppingGenerate gives the model one final tool-free turn to
	// answer from the observations collected so far.
	EarlyStoppingGenerate = "generate"

	// EarlyStoppingForce returns a canned stop answer.
	EarlyStoppingForce = "force"
)

// forcedStopAnswer mirrors the conventional agent-executor stop message.
const forcedStopAnswer = "Agent stopped due to iteration limit or time limit."

// EngineRequest describes one agent invocation.
type EngineRequest struct {
	// Role names the agent, used for graph naming and logs.
	Role string

	// SystemPrompt seeds the conversation. Empty means no system message.
	SystemPrompt string

	// Input is the user-turn content.
	Input string

	// Tools is the agent's tool set. Must be non-empty.
	Tools []tool.InvokableTool

	// MaxTurns bounds the think→act iterations.
	MaxTurns int

	// EarlyStopping is EarlyStoppingGenerate or EarlyStoppingForce.
	EarlyStopping string

	// Events receives the action/observation step events. May be nil.
	Events EventSink
}

// Engine runs one agent turn loop to completion and returns the final
// answer text.
type Engine interface {
	Run(ctx context.Context, req *EngineRequest) (string, error)
}

// EinoEngine drives a ReAct tool loop on an Eino chat model. Each request
// builds a fresh agent graph; the engine itself is stateless and safe for
// concurrent use.
type EinoEngine struct {
	chatModel einoModel.ToolCallingChatModel
}

// NewEinoEngine wraps chatModel. The model must support tool calling.
func NewEinoEngine(chatModel einoModel.BaseChatModel) (*EinoEngine, error) {
	tcm, ok := chatModel.(einoModel.ToolCallingChatModel)
	if !ok {
		return nil, errno.ErrModelNotToolCapable
	}
	return &EinoEngine{chatModel: tcm}, nil
}

func (e *EinoEngine) Run(ctx context.Context, req *EngineRequest) (string, error) {
	if len(req.Tools) == 0 {
		return "", errno.ErrNoToolsAvailable
	}

	scratch := newScratchpad()
	baseTools := make([]tool.BaseTool, 0, len(req.Tools))
	for _, t := range req.Tools {
		baseTools = append(baseTools, newTracedTool(t, req.Events, scratch))
	}

	reactAgent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: e.chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: baseTools,
		},
		// A turn is one model step plus one tools step; the final answer
		// costs one more model step.
		MaxStep: req.MaxTurns*2 + 1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create ReAct agent: %w", err)
	}

	chain := compose.NewChain[[]*schema.Message, *schema.Message]()
	agentLambda, err := compose.AnyLambda(reactAgent.Generate, reactAgent.Stream, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create agent lambda: %w", err)
	}
	chain.AppendLambda(agentLambda)

	runnable, err := chain.Compile(ctx, compose.WithGraphName(graphName(req.Role)))
	if err != nil {
		return "", fmt.Errorf("failed to compile agent chain: %w", err)
	}

	logger.Info("[Engine] built ReAct agent for %q with %d tools, max_turns=%d",
		req.Role, len(baseTools), req.MaxTurns)

	msgs := make([]*schema.Message, 0, 2)
	if req.SystemPrompt != "" {
		msgs = append(msgs, schema.SystemMessage(req.SystemPrompt))
	}
	msgs = append(msgs, schema.UserMessage(req.Input))

	clb := newModelLogCallback(req.Role)
	out, err := runnable.Invoke(ctx, msgs, compose.WithCallbacks(clb.Build()))
	if err != nil {
		if isMaxTurnsError(err) {
			return e.stopEarly(ctx, req, scratch)
		}
		return "", err
	}
	return out.Content, nil
}

// stopEarly resolves a run that hit its turn ceiling according to the
// requested early stopping method.
func (e *EinoEngine) stopEarly(ctx context.Context, req *EngineRequest, scratch *scratchpad) (string, error) {
	logger.Warn("[Engine] %q hit the %d-turn limit, early stopping with %q",
		req.Role, req.MaxTurns, req.EarlyStopping)

	if req.EarlyStopping != EarlyStoppingGenerate {
		return forcedStopAnswer, nil
	}

	msgs := make([]*schema.Message, 0, 4)
	if req.SystemPrompt != "" {
		msgs = append(msgs, schema.SystemMessage(req.SystemPrompt))
	}
	msgs = append(msgs, schema.UserMessage(req.Input))
	if notes := scratch.render(); notes != "" {
		msgs = append(msgs, schema.UserMessage("Observations collected so far:\n"+notes))
	}
	msgs = append(msgs, schema.UserMessage(
		"Your tool budget is exhausted. Give your final answer now using only the observations above."))

	out, err := e.chatModel.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("early stopping generation failed: %w", err)
	}
	return out.Content, nil
}

// graphName turns a role label into a compile-friendly graph name.
func graphName(role string) string {
	if role == "" {
		return "qa_agent"
	}
	return strings.ReplaceAll(strings.ToLower(role), " ", "_")
}

// isMaxTurnsError checks whether err is the ReAct loop running out of
// steps. Eino exposes compose.ErrExceedMaxSteps, but graph errors do not
// always survive errors.Is through wrapping, so a message match backs it
// up.
func isMaxTurnsError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, compose.ErrExceedMaxSteps) || errors.Is(err, errno.ErrMaxTurnsExceeded) {
		return true
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "exceeds max steps") ||
		strings.Contains(errMsg, "max step")
}
