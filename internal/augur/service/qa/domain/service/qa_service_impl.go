package service

import (
	"context"
	"strings"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service/runtime"
	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
)

// disabledStoreInfo is reported when no trace store is configured.
const disabledStoreInfo = "Elasticsearch client is not configured."

// qaServiceImpl implements the QAService interface.
type qaServiceImpl struct {
	executor     *runtime.Executor
	orchestrator *runtime.Orchestrator
	traces       repo.TraceRepo
	component    string
}

func NewQAService(executor *runtime.Executor,
	orchestrator *runtime.Orchestrator,
	traces repo.TraceRepo, component string) QAService {
	if component == "" {
		component = "elasticsearch"
	}
	return &qaServiceImpl{
		executor:     executor,
		orchestrator: orchestrator,
		traces:       traces,
		component:    component,
	}
}

func (s *qaServiceImpl) Ask(ctx context.Context, question string) *runtime.ExecuteResult {
	if strings.TrimSpace(question) == "" {
		return &runtime.ExecuteResult{Err: errno.ErrEmptyQuestion}
	}
	return s.executor.Execute(ctx, question)
}

func (s *qaServiceImpl) Pipeline(ctx context.Context, question string) *runtime.PipelineResult {
	if strings.TrimSpace(question) == "" {
		return &runtime.PipelineResult{Question: question, AgentFlow: []string{}, Err: errno.ErrEmptyQuestion}
	}
	return s.orchestrator.Process(ctx, question)
}

func (s *qaServiceImpl) Health(ctx context.Context) *StoreHealth {
	if s.traces == nil {
		return &StoreHealth{
			Component: s.component,
			Status:    StoreStatusDisabled,
			Info:      s.disabledInfo(),
		}
	}

	info, err := s.traces.Info(ctx)
	if err != nil {
		return &StoreHealth{
			Component: s.component,
			Status:    StoreStatusUnhealthy,
			Info:      err.Error(),
		}
	}

	return &StoreHealth{
		Component: s.component,
		Status:    StoreStatusHealthy,
		Info: map[string]string{
			"cluster_name": info.ClusterName,
			"version":      info.Version,
		},
	}
}

func (s *qaServiceImpl) disabledInfo() string {
	if s.component == "elasticsearch" {
		return disabledStoreInfo
	}
	return "Trace store is not configured."
}
