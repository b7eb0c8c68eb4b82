package runtime

import (
	"context"
	"sync"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/pkg/logger"
)

// EventSink receives step events emitted during an agent run.
type EventSink interface {
	OnEvent(ctx context.Context, ev entity.StepEvent)
}

// Recorder folds step events into a Run and flushes the resulting trace
// document to the trace store exactly once, when the run terminates.
//
// One Recorder serves one Run. The orchestrator shares a single Recorder
// across all pipeline stages, so steps from every stage land in the same
// trace in arrival order. A nil trace repo means storage is disabled;
// the Recorder then keeps the in-memory run but skips the flush.
type Recorder struct {
	mu      sync.Mutex
	run     *entity.Run
	traces  repo.TraceRepo
	flushed bool
}

// NewRecorder creates a recorder bound to run. traces may be nil.
func NewRecorder(run *entity.Run, traces repo.TraceRepo) *Recorder {
	return &Recorder{run: run, traces: traces}
}

// RunID returns the identifier of the recorded run.
func (r *Recorder) RunID() string {
	return r.run.ID
}

// OnEvent applies a step event to the run. Action and observation events
// append steps in arrival order; finish and error events terminate the
// run. Events are serialized, so concurrent tool callbacks stay ordered.
func (r *Recorder) OnEvent(ctx context.Context, ev entity.StepEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := ev.(type) {
	case entity.ActionEvent:
		r.run.AppendStep(e.AsStep())
		logger.Info("[%s] Agent Action: %s with input %s", r.run.ID, e.Tool, e.ToolInput)

	case entity.ObservationEvent:
		r.run.AppendStep(e.AsStep())
		logger.Info("[%s] Tool Output: %s", r.run.ID, e.Output)

	case entity.FinishEvent:
		r.run.Finish(e.Output)
		logger.Info("[%s] Agent Finished. Final Output: %s", r.run.ID, e.Output)

	case entity.ErrorEvent:
		r.run.Fail(e.Err)
		logger.Error("[%s] Agent Error: %v", r.run.ID, e.Err)
	}
}

// FlushFinal builds the trace document from the run and writes it to the
// trace store. At most one flush happens per recorder; later calls are
// no-ops. Storage failures are logged, never returned: a dead store must
// not fail an otherwise successful run.
func (r *Recorder) FlushFinal(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.flushed {
		return
	}
	r.flushed = true

	if r.traces == nil {
		logger.Debug("[%s] Trace store disabled, skipping trace flush", r.run.ID)
		return
	}

	doc := entity.BuildTraceDocument(r.run)
	if err := r.traces.Upsert(ctx, doc); err != nil {
		logger.Error("[%s] Failed to log trace to trace store: %v", r.run.ID, err)
		return
	}
	logger.Info("[%s] Successfully logged trace to trace store", r.run.ID)
}
