package runtime

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/store/inmemory"
)

// stubEngine replays canned outcomes in call order and captures every
// request it sees. When emitSteps is set it pushes one action and one
// observation through the request's event sink, like a real tool loop.
type stubEngine struct {
	answers   []string
	errs      []error
	requests  []*EngineRequest
	emitSteps bool
}

func (s *stubEngine) Run(ctx context.Context, req *EngineRequest) (string, error) {
	i := len(s.requests)
	s.requests = append(s.requests, req)

	if s.emitSteps && req.Events != nil {
		req.Events.OnEvent(ctx, entity.ActionEvent{
			Tool:      fmt.Sprintf("tool_%d", i),
			ToolInput: "{}",
			At:        time.Now().UTC(),
		})
		req.Events.OnEvent(ctx, entity.ObservationEvent{
			Output: fmt.Sprintf("observation_%d", i),
			At:     time.Now().UTC(),
		})
	}

	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.answers) {
		return s.answers[i], nil
	}
	return "", errors.New("stub exhausted")
}

func TestExecutorSuccessFlushesCompletedTrace(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewTraceStore()
	engine := &stubEngine{answers: []string{"Germany has 11 customers."}, emitSteps: true}

	exec := NewExecutor(engine, nil, store, ExecutorConfig{})
	res := exec.Execute(ctx, "How many customers are in Germany?")

	require.NoError(t, res.Err)
	assert.Equal(t, "Germany has 11 customers.", res.Answer)
	require.NotEmpty(t, res.RunID)

	doc, err := store.Get(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusCompleted, doc.Status)
	assert.Equal(t, AgentTypeSingle, doc.AgentType)
	assert.Equal(t, "How many customers are in Germany?", doc.Question)
	assert.Len(t, doc.Steps, 2)
	assert.Equal(t, 1, store.Len())
}

func TestExecutorWrapsQuestionInAnalystPrompt(t *testing.T) {
	engine := &stubEngine{answers: []string{"ok"}}
	exec := NewExecutor(engine, nil, nil, ExecutorConfig{})
	exec.Execute(context.Background(), "Which product is most expensive?")

	require.Len(t, engine.requests, 1)
	req := engine.requests[0]
	assert.Equal(t, AgentTypeSingle, req.Role)
	assert.Empty(t, req.SystemPrompt)
	assert.Contains(t, req.Input, "You are an expert business intelligence analyst.")
	assert.Contains(t, req.Input, "Here is the user's question: Which product is most expensive?")
}

func TestExecutorDefaultsTurnBudgetAndEarlyStopping(t *testing.T) {
	engine := &stubEngine{answers: []string{"ok"}}
	exec := NewExecutor(engine, nil, nil, ExecutorConfig{})
	exec.Execute(context.Background(), "q")

	require.Len(t, engine.requests, 1)
	assert.Equal(t, DefaultSingleAgentMaxTurns, engine.requests[0].MaxTurns)
	assert.Equal(t, EarlyStoppingGenerate, engine.requests[0].EarlyStopping)
}

func TestExecutorEngineFailureFlushesErrorTrace(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewTraceStore()
	engine := &stubEngine{errs: []error{errors.New("model unavailable")}, emitSteps: true}

	exec := NewExecutor(engine, nil, store, ExecutorConfig{})
	res := exec.Execute(ctx, "q")

	require.Error(t, res.Err)
	assert.Empty(t, res.Answer)
	require.NotEmpty(t, res.RunID, "run id is set even when the run fails")

	doc, err := store.Get(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusError, doc.Status)
	assert.Equal(t, "model unavailable", doc.Error)
	assert.Empty(t, doc.FinalAnswer)
	assert.Len(t, doc.Steps, 2, "steps before the failure survive")
}

func TestExecutorRunsWithoutTraceStore(t *testing.T) {
	engine := &stubEngine{answers: []string{"fine"}}
	exec := NewExecutor(engine, nil, nil, ExecutorConfig{MaxTurns: 3, EarlyStopping: EarlyStoppingForce})

	res := exec.Execute(context.Background(), "q")
	require.NoError(t, res.Err)
	assert.Equal(t, "fine", res.Answer)
	assert.Equal(t, 3, engine.requests[0].MaxTurns)
	assert.Equal(t, EarlyStoppingForce, engine.requests[0].EarlyStopping)
}
