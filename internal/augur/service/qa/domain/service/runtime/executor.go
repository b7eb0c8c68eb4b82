package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/pkg/logger"
)

// ExecutorConfig bounds the single agent's tool loop.
type ExecutorConfig struct {
	MaxTurns      int
	EarlyStopping string
}

// Executor answers a question with one SQL-capable analyst agent and
// records a full trace for every run, success or failure.
type Executor struct {
	engine Engine
	tools  []tool.InvokableTool
	traces repo.TraceRepo
	cfg    ExecutorConfig
}

// ExecuteResult is the outcome of one single-agent run. RunID is always
// set, including on failure, so callers can correlate the stored trace.
type ExecuteResult struct {
	RunID  string
	Answer string
	Err    error
}

// NewExecutor creates an executor. traces may be nil when trace storage
// is disabled.
func NewExecutor(engine Engine, tools []tool.InvokableTool, traces repo.TraceRepo, cfg ExecutorConfig) *Executor {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultSingleAgentMaxTurns
	}
	if cfg.EarlyStopping == "" {
		cfg.EarlyStopping = EarlyStoppingGenerate
	}
	return &Executor{
		engine: engine,
		tools:  tools,
		traces: traces,
		cfg:    cfg,
	}
}

// Execute runs the analyst agent on question. The trace is flushed
// exactly once on every path out of this method.
func (e *Executor) Execute(ctx context.Context, question string) *ExecuteResult {
	run := entity.NewRun(question, AgentTypeSingle)
	rec := NewRecorder(run, e.traces)
	defer rec.FlushFinal(ctx)

	logger.Info("[%s] single agent processing: %s", run.ID, question)

	answer, err := e.engine.Run(ctx, &EngineRequest{
		Role:          AgentTypeSingle,
		Input:         fmt.Sprintf(analystPromptFormat, question),
		Tools:         e.tools,
		MaxTurns:      e.cfg.MaxTurns,
		EarlyStopping: e.cfg.EarlyStopping,
		Events:        rec,
	})
	if err != nil {
		rec.OnEvent(ctx, entity.ErrorEvent{Err: err, At: time.Now().UTC()})
		return &ExecuteResult{RunID: run.ID, Err: err}
	}

	rec.OnEvent(ctx, entity.FinishEvent{Output: answer, At: time.Now().UTC()})
	return &ExecuteResult{RunID: run.ID, Answer: answer}
}
