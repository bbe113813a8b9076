package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"BoatSharing/bot/chat"
	"BoatSharing/entity"
	"BoatSharing/internal/lib/sl"
)

// Shared button labels.
const (
	labelYes          = "✅ Да"
	labelNo           = "❌ Нет"
	labelTrainingDone = "✅ Прошёл"
	labelTrainingNot  = "⏳ Ещё не прошёл"
)

// retryKeyboard is attached to every terminal message so the user can
// restart the form.
func retryKeyboard() [][]chat.InlineButton {
	return [][]chat.InlineButton{
		{{Text: "🔄 Начать заново", Data: chat.BuildCallback(chat.ActionStart)}},
	}
}

func yesNoRows() [][]chat.MenuButton {
	return [][]chat.MenuButton{
		{{Text: labelYes}, {Text: labelNo}},
	}
}

func trainingRows() [][]chat.MenuButton {
	return [][]chat.MenuButton{
		{{Text: labelTrainingDone}, {Text: labelTrainingNot}},
	}
}

// BaseStep provides common functionality for all steps. Its default input
// handler reports the input as unrouted, which sends the user back to the
// welcome action.
type BaseStep struct {
	id chat.StepID
}

func (s *BaseStep) ID() chat.StepID {
	return s.id
}

func (s *BaseStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	return chat.StepResult{}
}

func (s *BaseStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	return chat.StepResult{Unrouted: true}
}

// WelcomeStep shows the greeting with the start button and the rules link.
type WelcomeStep struct {
	BaseStep
}

func NewWelcomeStep() *WelcomeStep {
	return &WelcomeStep{BaseStep: BaseStep{id: StepWelcome}}
}

func (s *WelcomeStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	text := "⚓️ Добро пожаловать в BoatSharing!\n" +
		"Здесь вы можете арендовать маломерное судно и оформить все необходимые документы.\n\n" +
		"• Основные правила:\n" +
		"• Минимальный возраст — 21 год\n" +
		"• Наличие водительских прав — обязательно\n" +
		"• Соблюдение всех правил навигации"

	buttons := [][]chat.InlineButton{
		{{Text: "Начать оформление заявки", Data: chat.BuildCallback(chat.ActionStart)}},
		{{Text: "📜 Правила управления судном", URL: RulesLink}},
	}

	if err := m.SendInline(state.ChatID, text, buttons, false); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *WelcomeStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	if input.CallbackData != chat.ActionStart {
		return chat.StepResult{Unrouted: true}
	}

	// Replace the welcome message with the first question, so the start
	// button disappears together with the greeting.
	prompt := "📝 Введите ваше ФИО (полностью):"
	var err error
	if input.MessageID != "" {
		err = m.EditText(state.ChatID, input.MessageID, prompt, nil, false)
	} else {
		err = m.SendText(state.ChatID, prompt, false)
	}
	if err != nil {
		return chat.StepResult{Error: err}
	}

	return chat.StepResult{NextStep: StepFullName}
}

// FullNameStep collects the applicant's full name verbatim.
type FullNameStep struct {
	BaseStep
}

func NewFullNameStep() *FullNameStep {
	return &FullNameStep{BaseStep: BaseStep{id: StepFullName}}
}

// Enter sends nothing: the start trigger already edited its message into
// the name prompt.
func (s *FullNameStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	return chat.StepResult{}
}

func (s *FullNameStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	if input.Text == "" {
		return chat.StepResult{Unrouted: true}
	}
	return chat.StepResult{
		NextStep:    StepBirthDate,
		UpdateState: map[string]any{entity.FieldFullName: input.Text},
	}
}

// BirthDateStep collects the "date, age" pair and applies the age gate.
type BirthDateStep struct {
	BaseStep
}

func NewBirthDateStep() *BirthDateStep {
	return &BirthDateStep{BaseStep: BaseStep{id: StepBirthDate}}
}

func (s *BirthDateStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	err := m.SendText(state.ChatID, "📅 Введите дату рождения и возраст:\nПример: 01.01.1990, 35", false)
	if err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *BirthDateStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	if input.Text == "" {
		return chat.StepResult{Unrouted: true}
	}

	birthDate, age, err := ParseDatePair(input.Text)
	switch err {
	case nil:
	case ErrDatePairFormat:
		if sendErr := m.SendText(state.ChatID, "⚠️ Неверный формат. Введите дату и возраст через запятую.", false); sendErr != nil {
			return chat.StepResult{Error: sendErr}
		}
		return chat.StepResult{}
	default:
		if sendErr := m.SendText(state.ChatID, "⚠️ Неверный формат возраста. Введите целое число.", false); sendErr != nil {
			return chat.StepResult{Error: sendErr}
		}
		return chat.StepResult{}
	}

	if age < MinAge {
		err := m.SendInline(state.ChatID,
			"❌ Вы слишком молоды для аренды судна. Возраст должен быть не менее 21 года.",
			retryKeyboard(), false)
		if err != nil {
			return chat.StepResult{Error: err}
		}
		return chat.StepResult{Complete: true}
	}

	return chat.StepResult{
		NextStep: StepDriverLicense,
		UpdateState: map[string]any{
			entity.FieldBirthDate: birthDate,
			entity.FieldAge:       age,
		},
	}
}

// DriverLicenseStep asks for a driver license; "no" ends the form.
type DriverLicenseStep struct {
	BaseStep
}

func NewDriverLicenseStep() *DriverLicenseStep {
	return &DriverLicenseStep{BaseStep: BaseStep{id: StepDriverLicense}}
}

func (s *DriverLicenseStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	err := m.SendMenu(state.ChatID, "🪪 Есть ли у вас водительское удостоверение?", yesNoRows())
	if err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *DriverLicenseStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	if input.Text == "" {
		return chat.StepResult{Unrouted: true}
	}

	if !IsAffirmative(input.Text) {
		state.Set(entity.FieldDriverLicense, "НЕТ")
		err := m.SendInline(state.ChatID,
			"❌ Наличие водительского удостоверения обязательно для аренды.",
			retryKeyboard(), false)
		if err != nil {
			return chat.StepResult{Error: err}
		}
		return chat.StepResult{Complete: true}
	}

	return chat.StepResult{
		NextStep:    StepBoatLicense,
		UpdateState: map[string]any{entity.FieldDriverLicense: "ДА"},
	}
}

// BoatLicenseStep asks for a small-craft operator license; "no" branches
// into the training loop.
type BoatLicenseStep struct {
	BaseStep
}

func NewBoatLicenseStep() *BoatLicenseStep {
	return &BoatLicenseStep{BaseStep: BaseStep{id: StepBoatLicense}}
}

func (s *BoatLicenseStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	err := m.SendMenu(state.ChatID, "🛥 Есть ли у вас удостоверение на право управления маломерным судном?", yesNoRows())
	if err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *BoatLicenseStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	if input.Text == "" {
		return chat.StepResult{Unrouted: true}
	}

	if IsAffirmative(input.Text) {
		return chat.StepResult{
			NextStep:    StepRentDate,
			UpdateState: map[string]any{entity.FieldBoatLicense: "ДА"},
		}
	}

	return chat.StepResult{
		NextStep:    StepBoatTraining,
		UpdateState: map[string]any{entity.FieldBoatLicense: "НЕТ"},
	}
}

// BoatTrainingStep loops until the applicant reports completed training.
type BoatTrainingStep struct {
	BaseStep
}

func NewBoatTrainingStep() *BoatTrainingStep {
	return &BoatTrainingStep{BaseStep: BaseStep{id: StepBoatTraining}}
}

func (s *BoatTrainingStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	err := m.SendMenu(state.ChatID,
		"🛥 Для аренды судна необходимо пройти обучение:\n"+RulesLink,
		trainingRows())
	if err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *BoatTrainingStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	switch input.Text {
	case labelTrainingDone:
		return chat.StepResult{
			NextStep:    StepRentDate,
			UpdateState: map[string]any{entity.FieldBoatLicense: "Прошёл обучение"},
		}
	case labelTrainingNot:
		err := m.SendMenu(state.ChatID,
			"🛥 Обучение обязательно. Пройдите его по ссылке:\n"+RulesLink,
			trainingRows())
		if err != nil {
			return chat.StepResult{Error: err}
		}
		return chat.StepResult{}
	default:
		err := m.SendMenu(state.ChatID, "⚠️ Пожалуйста, выберите один из вариантов ниже.", trainingRows())
		if err != nil {
			return chat.StepResult{Error: err}
		}
		return chat.StepResult{}
	}
}

// RentDateStep collects the desired rental date and time verbatim.
type RentDateStep struct {
	BaseStep
}

func NewRentDateStep() *RentDateStep {
	return &RentDateStep{BaseStep: BaseStep{id: StepRentDate}}
}

func (s *RentDateStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	if err := m.SendText(state.ChatID, "📅 Укажите желаемую дату и время аренды:", false); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *RentDateStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	if input.Text == "" {
		return chat.StepResult{Unrouted: true}
	}
	return chat.StepResult{
		NextStep:    StepPhoneNumber,
		UpdateState: map[string]any{entity.FieldRentDate: input.Text},
	}
}

// PhoneNumberStep collects the phone number, typed or shared as a contact.
type PhoneNumberStep struct {
	BaseStep
}

func NewPhoneNumberStep() *PhoneNumberStep {
	return &PhoneNumberStep{BaseStep: BaseStep{id: StepPhoneNumber}}
}

func (s *PhoneNumberStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	if err := m.SendText(state.ChatID, "📱 Введите свой телефонный номер:", false); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *PhoneNumberStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	phone := input.Text
	if input.Phone != "" {
		phone = chat.NormalizePhone(input.Phone)
	}
	if phone == "" {
		return chat.StepResult{Unrouted: true}
	}
	return chat.StepResult{
		NextStep:    StepConfirm,
		UpdateState: map[string]any{entity.FieldPhoneNumber: phone},
	}
}

// ConfirmStep shows the summary and delegates to the Submitter on confirm.
type ConfirmStep struct {
	BaseStep
	submitter Submitter
	log       *slog.Logger
}

func NewConfirmStep(submitter Submitter, log *slog.Logger) *ConfirmStep {
	return &ConfirmStep{
		BaseStep:  BaseStep{id: StepConfirm},
		submitter: submitter,
		log:       log,
	}
}

func (s *ConfirmStep) Enter(ctx context.Context, m chat.Messenger, state *chat.Session) chat.StepResult {
	boatLicense := state.GetString(entity.FieldBoatLicense)
	if boatLicense == "" {
		boatLicense = "-"
	}

	summary := "📋 Пожалуйста, проверьте ваши данные:\n\n" +
		fmt.Sprintf("👤 <b>ФИО:</b> %s\n", state.GetString(entity.FieldFullName)) +
		fmt.Sprintf("🎂 <b>Дата рождения:</b> %s\n", state.GetString(entity.FieldBirthDate)) +
		fmt.Sprintf("📞 <b>Телефон:</b> %s\n", state.GetString(entity.FieldPhoneNumber)) +
		fmt.Sprintf("🪪 <b>Водительские права:</b> %s\n", state.GetString(entity.FieldDriverLicense)) +
		fmt.Sprintf("🛥 <b>Права на лодку:</b> %s\n", boatLicense) +
		fmt.Sprintf("📅 <b>Дата аренды:</b> %s\n", state.GetString(entity.FieldRentDate)) +
		"Всё верно?"

	buttons := [][]chat.InlineButton{
		{{Text: "✅ Подтвердить", Data: chat.BuildCallback(chat.ActionConfirm)}},
		{{Text: "❌ Отменить", Data: chat.BuildCallback(chat.ActionCancel)}},
	}

	if err := m.SendInline(state.ChatID, summary, buttons, true); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *ConfirmStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	switch input.CallbackData {
	case chat.ActionConfirm:
		return s.confirm(ctx, m, state, input)
	case chat.ActionCancel:
		if err := s.respond(m, state, input, "❌ Заявка отменена.", false); err != nil {
			return chat.StepResult{Error: err}
		}
		return chat.StepResult{Complete: true}
	default:
		return chat.StepResult{Unrouted: true}
	}
}

func (s *ConfirmStep) confirm(ctx context.Context, m chat.Messenger, state *chat.Session, input chat.UserInput) chat.StepResult {
	userID, err := strconv.ParseInt(state.UserID, 10, 64)
	if err != nil {
		s.log.Warn("non-numeric user id", slog.String("user_id", state.UserID), sl.Err(err))
	}
	applicant := entity.Applicant{
		UserID:   userID,
		Username: state.Handle,
	}

	outcome := s.submitter.Submit(ctx, applicant, state.Data)

	var text string
	rich := false
	switch outcome {
	case OutcomeSubmitted:
		text = "✅ <b>Ваша заявка успешно оформлена!</b>\n\n" +
			"Наш менеджер свяжется с вами в ближайшее время.\n" +
			"Время работы: с 9:00 до 19:00\n\n" +
			"Перед использованием судна ознакомьтесь с правилами:\n" + RulesLink
		rich = true
	case OutcomeStoreUnavailable:
		text = "⚠️ Произошла внутренняя ошибка. Попробуйте позже."
	}

	if err := s.respond(m, state, input, text, rich); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{Complete: true}
}

// respond replaces the summary message with the terminal text when the
// originating message is known, otherwise sends a new one.
func (s *ConfirmStep) respond(m chat.Messenger, state *chat.Session, input chat.UserInput, text string, rich bool) error {
	if input.MessageID != "" {
		return m.EditText(state.ChatID, input.MessageID, text, retryKeyboard(), rich)
	}
	return m.SendInline(state.ChatID, text, retryKeyboard(), rich)
}
