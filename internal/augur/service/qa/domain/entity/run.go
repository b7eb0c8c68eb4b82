package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the lifecycle state of a Run.
//
// State machine: Started → Finished | Error. The trace document derives
// Completed from the final answer when the run is flushed, so the full
// set observed in storage is started/finished/completed/error.
type RunStatus string

const (
	RunStatusStarted   RunStatus = "started"
	RunStatusFinished  RunStatus = "finished"
	RunStatusCompleted RunStatus = "completed"
	RunStatusError     RunStatus = "error"
)

// IsTerminal returns true if the run has reached a terminal state.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusFinished || s == RunStatusCompleted || s == RunStatusError
}

// Run is a single question→answer execution, either one agent or the
// whole pipeline. It accumulates the ordered step log that later becomes
// the trace document.
type Run struct {
	// ID is the unique run identifier, returned to the caller for
	// correlation with the stored trace.
	ID string `json:"id"`

	// Question is the original user question.
	Question string `json:"question"`

	// AgentRole labels who owns the run: "single_agent" for the plain
	// executor, "Orchestrator" for the pipeline.
	AgentRole string `json:"agent_role"`

	// Status is the current lifecycle state.
	Status RunStatus `json:"status"`

	// Steps is the append-only, ordered action/observation log.
	Steps []Step `json:"steps"`

	// FinalAnswer is the answer produced by the run. Empty on failure.
	FinalAnswer string `json:"final_answer"`

	// Error holds the failure message when Status is error.
	Error string `json:"error,omitempty"`

	// StartTime is when the run was created (UTC).
	StartTime time.Time `json:"start_time"`

	// EndTime is when the run reached a terminal state (UTC).
	EndTime time.Time `json:"end_time,omitempty"`
}

// NewRun creates a started run with a fresh ID for the given question.
func NewRun(question, agentRole string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Question:  question,
		AgentRole: agentRole,
		Status:    RunStatusStarted,
		Steps:     make([]Step, 0, 8),
		StartTime: time.Now().UTC(),
	}
}

// AppendStep records a step, preserving arrival order.
func (r *Run) AppendStep(step Step) {
	r.Steps = append(r.Steps, step)
}

// Finish marks the run successful with its final answer.
func (r *Run) Finish(answer string) {
	r.Status = RunStatusFinished
	r.FinalAnswer = answer
	r.EndTime = time.Now().UTC()
}

// Fail marks the run failed. The answer is cleared so downstream
// consumers never see a partial result, but collected steps stay.
func (r *Run) Fail(err error) {
	r.Status = RunStatusError
	r.FinalAnswer = ""
	if err != nil {
		r.Error = err.Error()
	}
	r.EndTime = time.Now().UTC()
}

// Duration returns the run's wall time in seconds, derived from the two
// timestamps. It is zero until the run terminates.
func (r *Run) Duration() float64 {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime).Seconds()
}
