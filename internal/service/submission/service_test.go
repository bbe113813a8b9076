package submission_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"BoatSharing/bot/workflows/booking"
	"BoatSharing/entity"
	"BoatSharing/internal/service/submission"
)

type fakeStore struct {
	available bool
	appendErr error
	rows      [][]interface{}
}

func (s *fakeStore) Available() bool { return s.available }

func (s *fakeStore) Append(_ context.Context, row []interface{}) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.rows = append(s.rows, row)
	return nil
}

type notification struct {
	recipient string
	text      string
}

type fakeNotifier struct {
	failFor map[string]error
	sent    []notification
}

func (n *fakeNotifier) Notify(recipient, text string) error {
	if err, ok := n.failFor[recipient]; ok {
		return err
	}
	n.sent = append(n.sent, notification{recipient: recipient, text: text})
	return nil
}

type fakeListener struct {
	accepted []entity.Submission
}

func (l *fakeListener) SubmissionAccepted(sub entity.Submission) {
	l.accepted = append(l.accepted, sub)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fullAnswers() map[string]any {
	return map[string]any{
		entity.FieldFullName:      "Иванов Иван Иванович",
		entity.FieldBirthDate:     "01.01.1990",
		entity.FieldAge:           36,
		entity.FieldDriverLicense: "ДА",
		entity.FieldBoatLicense:   "ДА",
		entity.FieldRentDate:      "02.02.2027 10:00",
		entity.FieldPhoneNumber:   "+71234567890",
	}
}

func TestService_Submit_AppendsRowInOrder(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{}
	svc := submission.NewService(store, notifier, []string{"111"}, discardLogger())

	outcome := svc.Submit(context.Background(), entity.Applicant{UserID: 42, Username: "ivan"}, fullAnswers())
	if outcome != booking.OutcomeSubmitted {
		t.Fatalf("outcome = %v, want OutcomeSubmitted", outcome)
	}

	if len(store.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(store.rows))
	}
	row := store.rows[0]
	if len(row) != 9 {
		t.Fatalf("expected 9 columns, got %d", len(row))
	}

	// Column 0 is the server-side timestamp; the rest carry the answers in
	// their fixed order.
	if ts, ok := row[0].(string); !ok || ts == "" {
		t.Errorf("timestamp column = %v, want non-empty string", row[0])
	}
	wantTail := []interface{}{
		"Иванов Иван Иванович",
		"01.01.1990",
		36,
		"ДА",
		"ДА",
		"02.02.2027 10:00",
		"+71234567890",
		"@ivan",
	}
	for i, want := range wantTail {
		if row[i+1] != want {
			t.Errorf("row[%d] = %v, want %v", i+1, row[i+1], want)
		}
	}

	if got := svc.Accepted(); got != 1 {
		t.Errorf("Accepted() = %d, want 1", got)
	}
}

func TestService_Submit_HandleAndBoatLicenseFallbacks(t *testing.T) {
	store := &fakeStore{available: true}
	svc := submission.NewService(store, &fakeNotifier{}, nil, discardLogger())

	answers := fullAnswers()
	delete(answers, entity.FieldBoatLicense)

	if outcome := svc.Submit(context.Background(), entity.Applicant{UserID: 42}, answers); outcome != booking.OutcomeSubmitted {
		t.Fatalf("outcome = %v, want OutcomeSubmitted", outcome)
	}

	row := store.rows[0]
	if row[5] != "-" {
		t.Errorf("boat license column = %v, want %q", row[5], "-")
	}
	if row[8] != "Не указан" {
		t.Errorf("handle column = %v, want %q", row[8], "Не указан")
	}
}

func TestService_Submit_NotifiesEveryAdmin(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{}
	svc := submission.NewService(store, notifier, []string{"111", "222", "333"}, discardLogger())

	svc.Submit(context.Background(), entity.Applicant{UserID: 42, Username: "ivan"}, fullAnswers())

	if len(notifier.sent) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifier.sent))
	}
	for i, recipient := range []string{"111", "222", "333"} {
		if notifier.sent[i].recipient != recipient {
			t.Errorf("notification %d recipient = %q, want %q", i, notifier.sent[i].recipient, recipient)
		}
	}

	text := notifier.sent[0].text
	if !strings.Contains(text, "Получена новая заявка") {
		t.Errorf("notification missing header:\n%s", text)
	}
	for _, want := range []string{"ФИО: Иванов Иван Иванович", "Возраст: 36", "Телефон: +71234567890"} {
		if !strings.Contains(text, want) {
			t.Errorf("notification missing %q:\n%s", want, text)
		}
	}
}

func TestService_Submit_FanOutSurvivesFailedRecipient(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{failFor: map[string]error{"111": errors.New("blocked by user")}}
	svc := submission.NewService(store, notifier, []string{"111", "222"}, discardLogger())

	outcome := svc.Submit(context.Background(), entity.Applicant{UserID: 42}, fullAnswers())
	if outcome != booking.OutcomeSubmitted {
		t.Fatalf("outcome = %v, want OutcomeSubmitted", outcome)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].recipient != "222" {
		t.Fatalf("expected delivery to 222 despite failure, got %+v", notifier.sent)
	}
	if len(store.rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(store.rows))
	}
}

func TestService_Submit_NilStore(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := submission.NewService(nil, notifier, []string{"111"}, discardLogger())

	outcome := svc.Submit(context.Background(), entity.Applicant{UserID: 42}, fullAnswers())
	if outcome != booking.OutcomeStoreUnavailable {
		t.Fatalf("outcome = %v, want OutcomeStoreUnavailable", outcome)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifier.sent))
	}
	if got := svc.Accepted(); got != 0 {
		t.Errorf("Accepted() = %d, want 0", got)
	}
}

func TestService_Submit_StoreNotAvailable(t *testing.T) {
	store := &fakeStore{available: false}
	notifier := &fakeNotifier{}
	svc := submission.NewService(store, notifier, []string{"111"}, discardLogger())

	if outcome := svc.Submit(context.Background(), entity.Applicant{UserID: 42}, fullAnswers()); outcome != booking.OutcomeStoreUnavailable {
		t.Fatalf("outcome = %v, want OutcomeStoreUnavailable", outcome)
	}
	if len(store.rows) != 0 {
		t.Errorf("expected no rows, got %d", len(store.rows))
	}
	if len(notifier.sent) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifier.sent))
	}
}

func TestService_Submit_AppendFailure(t *testing.T) {
	store := &fakeStore{available: true, appendErr: errors.New("quota exceeded")}
	notifier := &fakeNotifier{}
	svc := submission.NewService(store, notifier, []string{"111"}, discardLogger())

	if outcome := svc.Submit(context.Background(), entity.Applicant{UserID: 42}, fullAnswers()); outcome != booking.OutcomeStoreUnavailable {
		t.Fatalf("outcome = %v, want OutcomeStoreUnavailable", outcome)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("expected no notifications after failed append, got %d", len(notifier.sent))
	}
	if got := svc.Accepted(); got != 0 {
		t.Errorf("Accepted() = %d, want 0", got)
	}
}

func TestService_Submit_NotifiesListener(t *testing.T) {
	store := &fakeStore{available: true}
	listener := &fakeListener{}
	svc := submission.NewService(store, &fakeNotifier{}, nil, discardLogger())
	svc.SetListener(listener)

	svc.Submit(context.Background(), entity.Applicant{UserID: 42, Username: "ivan"}, fullAnswers())

	if len(listener.accepted) != 1 {
		t.Fatalf("expected 1 listener event, got %d", len(listener.accepted))
	}
	sub := listener.accepted[0]
	if sub.FullName != "Иванов Иван Иванович" {
		t.Errorf("FullName = %q, want %q", sub.FullName, "Иванов Иван Иванович")
	}
	if sub.Handle != "@ivan" {
		t.Errorf("Handle = %q, want %q", sub.Handle, "@ivan")
	}
	if sub.ID == "" {
		t.Error("expected submission ID to be set")
	}
}
