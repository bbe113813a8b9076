package chat

import (
	"context"
)

// StepID is a unique identifier for a step within a workflow.
type StepID string

// WorkflowID is a unique identifier for a workflow.
type WorkflowID string

// StepResult represents the outcome of handling an event in a step.
type StepResult struct {
	NextStep    StepID
	UpdateState map[string]any
	Complete    bool
	// Unrouted marks input the step has no handler for. The engine
	// falls back to the workflow's entry action instead of erroring.
	Unrouted bool
	Error    error
}

// Step defines the interface for a single workflow step.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Enter is called when the user enters this step. It sends the
	// step's prompt. Returning a NextStep auto-transitions without
	// waiting for user input.
	Enter(ctx context.Context, m Messenger, state *Session) StepResult

	// HandleInput processes user input (text, callback, or shared phone).
	HandleInput(ctx context.Context, m Messenger, state *Session, input UserInput) StepResult
}

// Workflow defines the interface for a complete workflow.
type Workflow interface {
	// ID returns the unique identifier for this workflow.
	ID() WorkflowID

	// InitialStep returns the entry step of the workflow.
	InitialStep() StepID

	// GetStep returns a step by its ID.
	GetStep(id StepID) (Step, bool)
}

// SessionStorage handles persistence of form sessions.
type SessionStorage interface {
	Save(ctx context.Context, state *Session) error
	Load(ctx context.Context, platform, userID string) (*Session, error)
	Delete(ctx context.Context, platform, userID string) error
}
