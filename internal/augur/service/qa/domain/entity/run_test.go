package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRun(t *testing.T) {
	run := NewRun("How many customers are from Germany?", "single_agent")

	require.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusStarted, run.Status)
	assert.Equal(t, "How many customers are from Germany?", run.Question)
	assert.Equal(t, "single_agent", run.AgentRole)
	assert.Empty(t, run.Steps)
	assert.False(t, run.StartTime.IsZero())
	assert.True(t, run.EndTime.IsZero())

	other := NewRun("same question", "single_agent")
	assert.NotEqual(t, run.ID, other.ID, "every run gets a fresh id")
}

func TestRunAppendStepPreservesOrder(t *testing.T) {
	run := NewRun("q", "single_agent")
	for i, tool := range []string{"sql_db_list_tables", "sql_db_schema", "sql_db_query"} {
		run.AppendStep(ActionEvent{Tool: tool, ToolInput: "in", At: time.Now().UTC()}.AsStep())
		run.AppendStep(ObservationEvent{Output: "out", At: time.Now().UTC()}.AsStep())
		require.Len(t, run.Steps, (i+1)*2)
	}

	require.Len(t, run.Steps, 6)
	assert.Equal(t, "sql_db_list_tables", run.Steps[0].Action.Tool)
	assert.Equal(t, StepTypeObservation, run.Steps[1].Type)
	assert.Equal(t, "sql_db_schema", run.Steps[2].Action.Tool)
	assert.Equal(t, "sql_db_query", run.Steps[4].Action.Tool)
}

func TestRunFinish(t *testing.T) {
	run := NewRun("q", "single_agent")
	run.Finish("There are 11 customers from Germany.")

	assert.Equal(t, RunStatusFinished, run.Status)
	assert.True(t, run.Status.IsTerminal())
	assert.Equal(t, "There are 11 customers from Germany.", run.FinalAnswer)
	assert.False(t, run.EndTime.IsZero())
	assert.GreaterOrEqual(t, run.Duration(), 0.0)
}

func TestRunFailClearsAnswerKeepsSteps(t *testing.T) {
	run := NewRun("q", "Orchestrator")
	run.AppendStep(ActionEvent{Tool: "sql_db_query", ToolInput: "SELECT 1", At: time.Now().UTC()}.AsStep())
	run.FinalAnswer = "partial"
	run.Fail(errors.New("model unreachable"))

	assert.Equal(t, RunStatusError, run.Status)
	assert.True(t, run.Status.IsTerminal())
	assert.Empty(t, run.FinalAnswer)
	assert.Equal(t, "model unreachable", run.Error)
	assert.Len(t, run.Steps, 1, "collected steps survive a failure")
}

func TestRunStatusIsTerminal(t *testing.T) {
	assert.False(t, RunStatusStarted.IsTerminal())
	assert.True(t, RunStatusFinished.IsTerminal())
	assert.True(t, RunStatusCompleted.IsTerminal())
	assert.True(t, RunStatusError.IsTerminal())
}

func TestRunDurationDerivedFromTimestamps(t *testing.T) {
	run := NewRun("q", "single_agent")
	run.StartTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	run.EndTime = time.Date(2025, 3, 1, 10, 0, 2, 500_000_000, time.UTC)

	assert.InDelta(t, 2.5, run.Duration(), 1e-9)
}
