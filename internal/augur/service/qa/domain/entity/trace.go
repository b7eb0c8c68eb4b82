package entity

import (
	"strings"
	"time"
)

// TraceDocument is the flattened run stored in the trace index, keyed by
// run_id so repeated writes overwrite rather than duplicate.
type TraceDocument struct {
	RunID           string    `json:"run_id"`
	Question        string    `json:"question"`
	AgentType       string    `json:"agent_type"`
	FinalAnswer     string    `json:"final_answer"`
	Status          RunStatus `json:"status"`
	Steps           []Step    `json:"steps"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Error           string    `json:"error,omitempty"`

	// Timestamp mirrors EndTime for index time-filtering.
	Timestamp time.Time `json:"@timestamp"`
}

// BuildTraceDocument flattens a run into its storable document. The
// stored status collapses to completed or error: a run only counts as
// completed when it produced a non-empty answer that is not itself an
// error report. Duration is derived from the timestamps here and
// nowhere else.
func BuildTraceDocument(run *Run) *TraceDocument {
	end := run.EndTime
	if end.IsZero() {
		end = time.Now().UTC()
	}

	status := RunStatusError
	if run.FinalAnswer != "" && !strings.Contains(run.FinalAnswer, "Error") {
		status = RunStatusCompleted
	}

	return &TraceDocument{
		RunID:           run.ID,
		Question:        run.Question,
		AgentType:       run.AgentRole,
		FinalAnswer:     run.FinalAnswer,
		Status:          status,
		Steps:           run.Steps,
		StartTime:       run.StartTime,
		EndTime:         end,
		DurationSeconds: end.Sub(run.StartTime).Seconds(),
		Error:           run.Error,
		Timestamp:       end,
	}
}
