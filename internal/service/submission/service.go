package submission

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"BoatSharing/bot/workflows/booking"
	"BoatSharing/entity"
	"BoatSharing/internal/lib/sl"
)

// RecordStore appends completed submissions to the external spreadsheet.
type RecordStore interface {
	// Available reports whether the store connection was established.
	Available() bool
	// Append adds one row of scalar values to the sheet.
	Append(ctx context.Context, row []interface{}) error
}

// Notifier delivers a plain-text notification to one staff recipient.
type Notifier interface {
	Notify(recipient, text string) error
}

// Listener observes accepted submissions, e.g. the dashboard hub.
type Listener interface {
	SubmissionAccepted(sub entity.Submission)
}

// Service builds the submission record from a completed answers map,
// appends it to the record store and fans notifications out to the admin
// roster. The append happens at most once per confirmation; notification
// failures are logged per recipient and never affect the outcome.
type Service struct {
	log      *slog.Logger
	store    RecordStore
	notifier Notifier
	admins   []string
	listener Listener

	accepted atomic.Int64
}

// NewService creates a submission service. store may be nil when the
// record store was never connected; every submission then reports
// OutcomeStoreUnavailable.
func NewService(store RecordStore, notifier Notifier, admins []string, log *slog.Logger) *Service {
	return &Service{
		log:      log.With(sl.Module("submission")),
		store:    store,
		notifier: notifier,
		admins:   admins,
	}
}

// SetListener sets an optional observer for accepted submissions.
func (s *Service) SetListener(l Listener) {
	s.listener = l
}

// Accepted returns the number of submissions accepted since startup.
func (s *Service) Accepted() int64 {
	return s.accepted.Load()
}

// Submit implements booking.Submitter.
func (s *Service) Submit(ctx context.Context, applicant entity.Applicant, answers map[string]any) booking.Outcome {
	sub := buildSubmission(applicant, answers)

	logger := s.log.With(
		slog.String("submission_id", sub.ID),
		slog.Int64("user_id", applicant.UserID),
	)

	if s.store == nil || !s.store.Available() {
		logger.Error("record store not connected, submission dropped")
		return booking.OutcomeStoreUnavailable
	}

	if err := s.store.Append(ctx, sub.Row()); err != nil {
		logger.Error("appending submission row", sl.Err(err))
		return booking.OutcomeStoreUnavailable
	}
	logger.Info("submission saved", slog.String("fio", sub.FullName))

	// Best-effort fan-out: one failed recipient never blocks the rest,
	// and the row is already appended either way.
	text := notificationText(answers)
	for _, admin := range s.admins {
		if s.notifier == nil {
			break
		}
		if err := s.notifier.Notify(admin, text); err != nil {
			logger.Error("notifying admin", slog.String("admin", admin), sl.Err(err))
			continue
		}
		logger.Debug("admin notified", slog.String("admin", admin))
	}

	if s.listener != nil {
		s.listener.SubmissionAccepted(sub)
	}
	s.accepted.Add(1)

	return booking.OutcomeSubmitted
}

// buildSubmission snapshots a completed answers map into the immutable
// record, with the fixed column order and a handle fallback.
func buildSubmission(applicant entity.Applicant, answers map[string]any) entity.Submission {
	handle := "Не указан"
	if applicant.Username != "" {
		handle = "@" + applicant.Username
	}

	boatLicense := getString(answers, entity.FieldBoatLicense)
	if boatLicense == "" {
		boatLicense = "-"
	}

	return entity.Submission{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now(),
		FullName:      getString(answers, entity.FieldFullName),
		BirthDate:     getString(answers, entity.FieldBirthDate),
		Age:           getInt(answers, entity.FieldAge),
		DriverLicense: getString(answers, entity.FieldDriverLicense),
		BoatLicense:   boatLicense,
		RentDate:      getString(answers, entity.FieldRentDate),
		PhoneNumber:   getString(answers, entity.FieldPhoneNumber),
		Handle:        handle,
	}
}

// notificationText renders the staff notification, iterating the field
// catalog so labels appear in a stable order.
func notificationText(answers map[string]any) string {
	text := "🔔 Получена новая заявка:\n\n"
	for _, field := range entity.FieldCatalog {
		value, ok := answers[field.Key]
		if !ok {
			continue
		}
		text += fmt.Sprintf("%s: %v\n", field.Label, value)
	}
	return text
}

func getString(answers map[string]any, key string) string {
	if v, ok := answers[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func getInt(answers map[string]any, key string) int {
	if v, ok := answers[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int64:
			return int(val)
		case float64:
			return int(val)
		}
	}
	return 0
}
