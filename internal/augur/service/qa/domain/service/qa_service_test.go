package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service/runtime"
	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
	"github.com/sibylline/sibyl/internal/augur/service/qa/store/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	answer string
	err    error
}

func (s *stubEngine) Run(_ context.Context, req *runtime.EngineRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

type brokenRepo struct {
	repo.TraceRepo
	infoErr error
}

func (r *brokenRepo) Info(_ context.Context) (*repo.StoreInfo, error) {
	return nil, r.infoErr
}

func newTestService(engine runtime.Engine, traces repo.TraceRepo, component string) QAService {
	executor := runtime.NewExecutor(engine, nil, traces, runtime.ExecutorConfig{})
	orchestrator := runtime.NewOrchestrator(engine, nil, traces, runtime.OrchestratorConfig{})
	return NewQAService(executor, orchestrator, traces, component)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc := newTestService(&stubEngine{answer: "fine"}, nil, "")

	res := svc.Ask(context.Background(), "   ")
	require.ErrorIs(t, res.Err, errno.ErrEmptyQuestion)
	assert.Empty(t, res.RunID)
}

func TestPipelineRejectsEmptyQuestion(t *testing.T) {
	svc := newTestService(&stubEngine{answer: "fine"}, nil, "")

	res := svc.Pipeline(context.Background(), "")
	require.ErrorIs(t, res.Err, errno.ErrEmptyQuestion)
	assert.Equal(t, []string{}, res.AgentFlow)
}

func TestAskDelegatesToExecutor(t *testing.T) {
	store := inmemory.NewTraceStore()
	svc := newTestService(&stubEngine{answer: "42 orders"}, store, "inmemory")

	res := svc.Ask(context.Background(), "How many orders were placed in 1997?")
	require.NoError(t, res.Err)
	assert.Equal(t, "42 orders", res.Answer)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 1, store.Len())
}

func TestPipelineDelegatesToOrchestrator(t *testing.T) {
	store := inmemory.NewTraceStore()
	svc := newTestService(&stubEngine{answer: "stage output"}, store, "inmemory")

	res := svc.Pipeline(context.Background(), "Which country has the most customers?")
	require.NoError(t, res.Err)
	assert.Equal(t, "stage output", res.FinalReport)
	assert.Equal(t, []string{"SQL Agent", "Analytics Agent", "Reporting Agent"}, res.AgentFlow)
	assert.Equal(t, 1, store.Len())
}

func TestHealthDisabledWithoutStore(t *testing.T) {
	svc := newTestService(&stubEngine{}, nil, "")

	h := svc.Health(context.Background())
	assert.Equal(t, "elasticsearch", h.Component)
	assert.Equal(t, StoreStatusDisabled, h.Status)
	assert.Equal(t, "Elasticsearch client is not configured.", h.Info)
}

func TestHealthHealthyStore(t *testing.T) {
	store := inmemory.NewTraceStore()
	svc := newTestService(&stubEngine{}, store, "inmemory")

	h := svc.Health(context.Background())
	assert.Equal(t, "inmemory", h.Component)
	assert.Equal(t, StoreStatusHealthy, h.Status)

	info, ok := h.Info.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "inmemory", info["cluster_name"])
}

func TestHealthUnhealthyStore(t *testing.T) {
	broken := &brokenRepo{infoErr: errors.New("connection refused")}
	svc := newTestService(&stubEngine{}, broken, "elasticsearch")

	h := svc.Health(context.Background())
	assert.Equal(t, StoreStatusUnhealthy, h.Status)
	assert.Equal(t, "connection refused", h.Info)
}

func TestFailedAskStoresErrorTrace(t *testing.T) {
	store := inmemory.NewTraceStore()
	svc := newTestService(&stubEngine{err: errors.New("model unavailable")}, store, "inmemory")

	res := svc.Ask(context.Background(), "Which supplier provides the most products?")
	require.Error(t, res.Err)
	assert.NotEmpty(t, res.RunID)

	doc, err := store.Get(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusError, doc.Status)
	assert.Empty(t, doc.FinalAnswer)
}
