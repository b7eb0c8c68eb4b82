package service

import (
	"context"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service/runtime"
)

// Trace store states reported by Health.
const (
	StoreStatusHealthy   = "healthy"
	StoreStatusUnhealthy = "unhealthy"
	StoreStatusDisabled  = "disabled"
)

// StoreHealth describes the trace store backend for the health endpoint.
type StoreHealth struct {
	// Component is the services map key, e.g. "elasticsearch".
	Component string

	// Status is one of healthy, unhealthy or disabled.
	Status string

	// Info carries cluster details when healthy, otherwise a message.
	Info any
}

// QAService is the application-level service interface for business
// question answering.
//
// It provides:
// - Ask: the single analyst agent
// - Pipeline: the SQL → Analytics → Reporting multi-agent flow
// - Health: trace store liveness for the health endpoint
type QAService interface {
	// Ask runs the single business analyst agent on one question. The
	// result carries the run ID even when Err is set. Empty questions
	// are rejected up front without starting a run.
	Ask(ctx context.Context, question string) *runtime.ExecuteResult

	// Pipeline runs the fixed three-stage multi-agent flow on one
	// question. Failure semantics follow the orchestrator: outputs are
	// cleared, steps collected so far stay in the trace.
	Pipeline(ctx context.Context, question string) *runtime.PipelineResult

	// Health reports the state of the trace store backend. It never
	// fails; probe errors degrade the report to unhealthy.
	Health(ctx context.Context) *StoreHealth
}
