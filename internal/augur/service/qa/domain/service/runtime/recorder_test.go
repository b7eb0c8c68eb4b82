package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/internal/augur/service/qa/store/inmemory"
)

// countingRepo wraps the in-memory store and counts upserts, optionally
// failing every write.
type countingRepo struct {
	inner   *inmemory.TraceStore
	upserts int
	failAll bool
}

func (c *countingRepo) Upsert(ctx context.Context, doc *entity.TraceDocument) error {
	c.upserts++
	if c.failAll {
		return errors.New("store unavailable")
	}
	return c.inner.Upsert(ctx, doc)
}

func (c *countingRepo) Info(ctx context.Context) (*repo.StoreInfo, error) {
	return c.inner.Info(ctx)
}

func (c *countingRepo) Close() error { return nil }

func TestRecorderAppendsStepsInArrivalOrder(t *testing.T) {
	ctx := context.Background()
	run := entity.NewRun("total revenue?", AgentTypeSingle)
	rec := NewRecorder(run, nil)

	rec.OnEvent(ctx, entity.ActionEvent{Tool: "sql_db_query", ToolInput: `{"query":"SELECT 1"}`, At: time.Now().UTC()})
	rec.OnEvent(ctx, entity.ObservationEvent{Output: "[(1,)]", At: time.Now().UTC()})
	rec.OnEvent(ctx, entity.ActionEvent{Tool: "sql_db_list_tables", At: time.Now().UTC()})

	require.Len(t, run.Steps, 3)
	assert.Equal(t, entity.StepTypeAction, run.Steps[0].Type)
	assert.Equal(t, "sql_db_query", run.Steps[0].Action.Tool)
	assert.Equal(t, entity.StepTypeObservation, run.Steps[1].Type)
	assert.Equal(t, "[(1,)]", run.Steps[1].Observation)
	assert.Equal(t, "sql_db_list_tables", run.Steps[2].Action.Tool)
}

func TestRecorderFinishAndErrorTerminateRun(t *testing.T) {
	ctx := context.Background()

	run := entity.NewRun("q", AgentTypeSingle)
	rec := NewRecorder(run, nil)
	rec.OnEvent(ctx, entity.FinishEvent{Output: "42", At: time.Now().UTC()})
	assert.Equal(t, entity.RunStatusFinished, run.Status)
	assert.Equal(t, "42", run.FinalAnswer)
	assert.False(t, run.EndTime.IsZero())

	run2 := entity.NewRun("q", AgentTypeSingle)
	rec2 := NewRecorder(run2, nil)
	rec2.OnEvent(ctx, entity.ErrorEvent{Err: errors.New("model timeout"), At: time.Now().UTC()})
	assert.Equal(t, entity.RunStatusError, run2.Status)
	assert.Empty(t, run2.FinalAnswer)
	assert.Equal(t, "model timeout", run2.Error)
}

func TestRecorderFlushesExactlyOnce(t *testing.T) {
	ctx := context.Background()
	store := &countingRepo{inner: inmemory.NewTraceStore()}
	run := entity.NewRun("q", AgentTypeSingle)
	rec := NewRecorder(run, store)

	rec.OnEvent(ctx, entity.FinishEvent{Output: "answer", At: time.Now().UTC()})
	rec.FlushFinal(ctx)
	rec.FlushFinal(ctx)
	rec.FlushFinal(ctx)

	assert.Equal(t, 1, store.upserts)

	doc, err := store.inner.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusCompleted, doc.Status)
	assert.Equal(t, "answer", doc.FinalAnswer)
}

func TestRecorderFlushSwallowsStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := &countingRepo{inner: inmemory.NewTraceStore(), failAll: true}
	run := entity.NewRun("q", AgentTypeSingle)
	rec := NewRecorder(run, store)

	rec.OnEvent(ctx, entity.FinishEvent{Output: "answer", At: time.Now().UTC()})

	// Must not panic or surface the error; the run already succeeded.
	rec.FlushFinal(ctx)
	assert.Equal(t, 1, store.upserts)
}

func TestRecorderFlushSkippedWhenStoreDisabled(t *testing.T) {
	ctx := context.Background()
	run := entity.NewRun("q", AgentTypeSingle)
	rec := NewRecorder(run, nil)

	rec.OnEvent(ctx, entity.FinishEvent{Output: "answer", At: time.Now().UTC()})
	rec.FlushFinal(ctx)

	// Run state is still updated even though nothing was persisted.
	assert.Equal(t, entity.RunStatusFinished, run.Status)
}

func TestRecorderFlushAfterErrorStoresErrorTrace(t *testing.T) {
	ctx := context.Background()
	store := &countingRepo{inner: inmemory.NewTraceStore()}
	run := entity.NewRun("q", AgentTypeOrchestrator)
	rec := NewRecorder(run, store)

	rec.OnEvent(ctx, entity.ActionEvent{Tool: "sql_db_query", ToolInput: "{}", At: time.Now().UTC()})
	rec.OnEvent(ctx, entity.ErrorEvent{Err: errors.New("stage exploded"), At: time.Now().UTC()})
	rec.FlushFinal(ctx)

	doc, err := store.inner.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusError, doc.Status)
	assert.Equal(t, "stage exploded", doc.Error)
	assert.Empty(t, doc.FinalAnswer)
	assert.Len(t, doc.Steps, 1, "steps gathered before the failure stay in the trace")
}
