package booking

import (
	"context"
	"log/slog"

	"BoatSharing/bot/chat"
	"BoatSharing/entity"
)

// Workflow ID
const (
	WorkflowID chat.WorkflowID = "booking"
)

// Step IDs
const (
	StepWelcome       chat.StepID = "welcome"
	StepFullName      chat.StepID = "full_name"
	StepBirthDate     chat.StepID = "birth_date"
	StepDriverLicense chat.StepID = "driver_license"
	StepBoatLicense   chat.StepID = "boat_license"
	StepBoatTraining  chat.StepID = "boat_training"
	StepRentDate      chat.StepID = "rent_date"
	StepPhoneNumber   chat.StepID = "phone_number"
	StepConfirm       chat.StepID = "confirm"
)

// MinAge is the youngest age allowed to rent a boat. The check is strict:
// exactly MinAge passes.
const MinAge = 21

// RulesLink points to the official small-craft operation rules, shown on
// the welcome screen and in the training prompts.
const RulesLink = "https://64.mchs.gov.ru/uploads/resource/2021-07-01/normativno-pravovye-akty_1625137914639753523.pdf"

// Outcome is the result of a submission attempt reported back to the form.
type Outcome int

const (
	// OutcomeSubmitted means the record was appended and staff notified.
	OutcomeSubmitted Outcome = iota
	// OutcomeStoreUnavailable means the record store was never connected
	// or the append failed. The user is shown a generic retryable error.
	OutcomeStoreUnavailable
)

// Submitter persists a completed form and notifies staff. It is invoked
// only from the terminal confirmation step.
type Submitter interface {
	Submit(ctx context.Context, applicant entity.Applicant, answers map[string]any) Outcome
}

// BookingWorkflow implements the rental intake form.
type BookingWorkflow struct {
	steps     map[chat.StepID]chat.Step
	submitter Submitter
	log       *slog.Logger
}

// NewBookingWorkflow creates the booking workflow.
func NewBookingWorkflow(submitter Submitter, log *slog.Logger) *BookingWorkflow {
	w := &BookingWorkflow{
		steps:     make(map[chat.StepID]chat.Step),
		submitter: submitter,
		log:       log,
	}
	w.registerSteps()
	return w
}

// ID returns the workflow ID.
func (w *BookingWorkflow) ID() chat.WorkflowID {
	return WorkflowID
}

// InitialStep returns the entry step.
func (w *BookingWorkflow) InitialStep() chat.StepID {
	return StepWelcome
}

// GetStep returns a step by ID.
func (w *BookingWorkflow) GetStep(id chat.StepID) (chat.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *BookingWorkflow) registerSteps() {
	w.steps[StepWelcome] = NewWelcomeStep()
	w.steps[StepFullName] = NewFullNameStep()
	w.steps[StepBirthDate] = NewBirthDateStep()
	w.steps[StepDriverLicense] = NewDriverLicenseStep()
	w.steps[StepBoatLicense] = NewBoatLicenseStep()
	w.steps[StepBoatTraining] = NewBoatTrainingStep()
	w.steps[StepRentDate] = NewRentDateStep()
	w.steps[StepPhoneNumber] = NewPhoneNumberStep()
	w.steps[StepConfirm] = NewConfirmStep(w.submitter, w.log)
}
