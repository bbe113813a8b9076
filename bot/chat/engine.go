package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Engine is the platform-agnostic conversation orchestrator. It owns the
// per-user sessions and routes normalized input to the current step of the
// user's workflow. Input that cannot be routed (no active session, a slash
// command mid-form, a step reporting it unrouted) falls back to the default
// workflow's entry action instead of erroring.
type Engine struct {
	workflows       map[WorkflowID]Workflow
	defaultWorkflow WorkflowID
	storage         SessionStorage
	log             *slog.Logger
}

// NewEngine creates a new conversation engine.
func NewEngine(storage SessionStorage, log *slog.Logger) *Engine {
	return &Engine{
		workflows: make(map[WorkflowID]Workflow),
		storage:   storage,
		log:       log,
	}
}

// RegisterWorkflow adds a workflow to the engine. The first registered
// workflow becomes the default entry for unrouted input.
func (e *Engine) RegisterWorkflow(w Workflow) {
	e.workflows[w.ID()] = w
	if e.defaultWorkflow == "" {
		e.defaultWorkflow = w.ID()
	}
	e.log.Info("chat engine: registered workflow", slog.String("workflow_id", string(w.ID())))
}

// HandleMessage processes a text message from any platform.
func (e *Engine) HandleMessage(ctx context.Context, m Messenger, platform, userID, chatID, handle, text string) error {
	state, err := e.storage.Load(ctx, platform, userID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	// No active session, or a command arriving mid-form: show the
	// welcome action and reset.
	if state == nil || strings.HasPrefix(text, "/") {
		return e.restart(ctx, m, platform, userID, chatID, handle)
	}

	step, w, err := e.currentStep(state)
	if err != nil {
		return err
	}

	result := step.HandleInput(ctx, m, state, UserInput{Text: text})
	return e.processResult(ctx, m, state, w, result)
}

// HandleCallback processes an inline button press. messageID identifies the
// message the button was attached to so steps can edit it in place.
func (e *Engine) HandleCallback(ctx context.Context, m Messenger, platform, userID, chatID, handle, messageID, data string) error {
	cb := ParseCallback(data)
	if cb == nil {
		return nil
	}

	state, err := e.storage.Load(ctx, platform, userID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	// The start trigger restarts the form from any prior state,
	// discarding the old session.
	if cb.IsStart() {
		if state != nil {
			if err := e.storage.Delete(ctx, platform, userID); err != nil {
				return fmt.Errorf("discarding session: %w", err)
			}
		}
		w, ok := e.workflows[e.defaultWorkflow]
		if !ok {
			return fmt.Errorf("workflow not found: %s", e.defaultWorkflow)
		}
		state = NewSession(platform, userID, chatID, handle, w.ID(), w.InitialStep())
		if err := e.storage.Save(ctx, state); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
	}

	// A callback with no session (for example a duplicate confirm after
	// the form already ended) is dropped.
	if state == nil {
		e.log.Debug("chat engine: callback without session",
			slog.String("platform", platform),
			slog.String("user_id", userID),
			slog.String("action", cb.Action),
		)
		return nil
	}

	step, w, err := e.currentStep(state)
	if err != nil {
		return err
	}

	result := step.HandleInput(ctx, m, state, UserInput{CallbackData: cb.Action, MessageID: messageID})
	return e.processResult(ctx, m, state, w, result)
}

// HandleContact processes a shared contact (phone number).
func (e *Engine) HandleContact(ctx context.Context, m Messenger, platform, userID, chatID, handle, phone string) error {
	state, err := e.storage.Load(ctx, platform, userID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if state == nil {
		return e.restart(ctx, m, platform, userID, chatID, handle)
	}

	step, w, err := e.currentStep(state)
	if err != nil {
		return err
	}

	result := step.HandleInput(ctx, m, state, UserInput{Phone: phone})
	return e.processResult(ctx, m, state, w, result)
}

// StartWorkflow begins a new workflow for a user.
func (e *Engine) StartWorkflow(ctx context.Context, m Messenger, platform, userID, chatID, handle string, workflowID WorkflowID) error {
	w, ok := e.workflows[workflowID]
	if !ok {
		return fmt.Errorf("workflow not found: %s", workflowID)
	}

	state := NewSession(platform, userID, chatID, handle, workflowID, w.InitialStep())

	if err := e.storage.Save(ctx, state); err != nil {
		return fmt.Errorf("saving initial session: %w", err)
	}

	step, ok := w.GetStep(w.InitialStep())
	if !ok {
		return fmt.Errorf("initial step not found: %s", w.InitialStep())
	}

	e.log.Info("chat engine: starting workflow",
		slog.String("platform", platform),
		slog.String("user_id", userID),
		slog.String("workflow_id", string(workflowID)),
	)

	result := step.Enter(ctx, m, state)
	return e.processResult(ctx, m, state, w, result)
}

// restart discards any existing session and re-enters the default workflow.
func (e *Engine) restart(ctx context.Context, m Messenger, platform, userID, chatID, handle string) error {
	if err := e.storage.Delete(ctx, platform, userID); err != nil {
		return fmt.Errorf("discarding session: %w", err)
	}
	return e.StartWorkflow(ctx, m, platform, userID, chatID, handle, e.defaultWorkflow)
}

func (e *Engine) currentStep(state *Session) (Step, Workflow, error) {
	w, ok := e.workflows[state.WorkflowID]
	if !ok {
		return nil, nil, fmt.Errorf("workflow not found: %s", state.WorkflowID)
	}
	step, ok := w.GetStep(state.CurrentStep)
	if !ok {
		return nil, nil, fmt.Errorf("step not found: %s", state.CurrentStep)
	}
	return step, w, nil
}

// processResult handles the result of a step handler: transitions,
// auto-transition chaining, session saves and terminal cleanup.
func (e *Engine) processResult(ctx context.Context, m Messenger, state *Session, w Workflow, result StepResult) error {
	if result.Error != nil {
		e.log.Error("chat engine: step error",
			slog.String("platform", state.Platform),
			slog.String("user_id", state.UserID),
			slog.String("step_id", string(state.CurrentStep)),
			slog.String("error", result.Error.Error()),
		)
		return result.Error
	}

	if result.Unrouted {
		e.log.Debug("chat engine: unrouted input",
			slog.String("platform", state.Platform),
			slog.String("user_id", state.UserID),
			slog.String("step_id", string(state.CurrentStep)),
		)
		return e.restart(ctx, m, state.Platform, state.UserID, state.ChatID, state.Handle)
	}

	if result.UpdateState != nil {
		state.MergeData(result.UpdateState)
	}
	state.UpdatedAt = time.Now()

	if result.Complete {
		e.log.Info("chat engine: workflow completed",
			slog.String("platform", state.Platform),
			slog.String("user_id", state.UserID),
			slog.String("workflow_id", string(state.WorkflowID)),
		)
		return e.storage.Delete(ctx, state.Platform, state.UserID)
	}

	// Transition to the next step if specified, chaining auto-transitions.
	const maxTransitions = 20
	for i := 0; result.NextStep != "" && result.NextStep != state.CurrentStep && i < maxTransitions; i++ {
		state.CurrentStep = result.NextStep

		if err := e.storage.Save(ctx, state); err != nil {
			return fmt.Errorf("saving session after transition: %w", err)
		}

		step, ok := w.GetStep(result.NextStep)
		if !ok {
			return fmt.Errorf("next step not found: %s", result.NextStep)
		}

		e.log.Debug("chat engine: transitioning",
			slog.String("platform", state.Platform),
			slog.String("user_id", state.UserID),
			slog.String("step_id", string(result.NextStep)),
		)

		result = step.Enter(ctx, m, state)
		if result.Error != nil {
			return result.Error
		}

		if result.UpdateState != nil {
			state.MergeData(result.UpdateState)
		}
		state.UpdatedAt = time.Now()

		if result.Complete {
			return e.storage.Delete(ctx, state.Platform, state.UserID)
		}
	}

	return e.storage.Save(ctx, state)
}
