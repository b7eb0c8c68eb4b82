package entity

import "time"

// StepEvent is the closed set of events an agent execution can emit.
// All variants funnel through a single handler (the trace recorder);
// the unexported marker keeps the set closed at compile time.
type StepEvent interface {
	stepEvent()

	// OccurredAt is the event's UTC timestamp.
	OccurredAt() time.Time
}

// ActionEvent records the agent deciding to call a tool. Log carries the
// model's reasoning text preceding the call, when available.
type ActionEvent struct {
	Tool      string
	ToolInput string
	Log       string
	At        time.Time
}

// ObservationEvent records a tool's output.
type ObservationEvent struct {
	Output string
	At     time.Time
}

// FinishEvent records the agent producing its final answer.
type FinishEvent struct {
	Output string
	At     time.Time
}

// ErrorEvent records a failure terminating the run.
type ErrorEvent struct {
	Err error
	At  time.Time
}

func (ActionEvent) stepEvent()      {}
func (ObservationEvent) stepEvent() {}
func (FinishEvent) stepEvent()      {}
func (ErrorEvent) stepEvent()       {}

func (e ActionEvent) OccurredAt() time.Time      { return e.At }
func (e ObservationEvent) OccurredAt() time.Time { return e.At }
func (e FinishEvent) OccurredAt() time.Time      { return e.At }
func (e ErrorEvent) OccurredAt() time.Time       { return e.At }

// Step is the persisted form of an action or observation event inside a
// trace document.
type Step struct {
	// Type is "action" or "observation".
	Type string `json:"type"`

	// Action is set for action steps.
	Action *StepAction `json:"action,omitempty"`

	// Observation is the tool output for observation steps.
	Observation string `json:"observation,omitempty"`

	// Timestamp is when the step happened.
	Timestamp time.Time `json:"@timestamp"`
}

// StepAction describes the tool invocation inside an action step.
type StepAction struct {
	Tool      string `json:"tool"`
	ToolInput string `json:"tool_input"`
	Log       string `json:"log"`
}

const (
	StepTypeAction      = "action"
	StepTypeObservation = "observation"
)

// AsStep converts an action event to its persisted form.
func (e ActionEvent) AsStep() Step {
	return Step{
		Type: StepTypeAction,
		Action: &StepAction{
			Tool:      e.Tool,
			ToolInput: e.ToolInput,
			Log:       e.Log,
		},
		Timestamp: e.At,
	}
}

// AsStep converts an observation event to its persisted form.
func (e ObservationEvent) AsStep() Step {
	return Step{
		Type:        StepTypeObservation,
		Observation: e.Output,
		Timestamp:   e.At,
	}
}
