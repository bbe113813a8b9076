package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"

	"BoatSharing/bot/chat"
	"BoatSharing/bot/chat/telegram"
	"BoatSharing/internal/lib/sl"
)

// Platform identifier used as the session key prefix.
const Platform = "telegram"

// TgBot is the Telegram transport: it polls for updates and routes them
// into the conversation engine. It also implements the admin notification
// fan-out target and the logger's admin mirror.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
	messenger   chat.Messenger
	engine      *chat.Engine
}

// NewTgBot creates a new bot instance. adminIds is the staff roster; the
// first numeric entry doubles as the log-mirror target.
func NewTgBot(botName, apiKey string, adminIds []string, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		botUsername: botName,
	}

	for _, admin := range adminIds {
		if id, err := strconv.ParseInt(admin, 10, 64); err == nil {
			tgBot.adminId = id
			break
		}
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api
	tgBot.messenger = telegram.NewMessenger(api)

	return tgBot, nil
}

// SetEngine sets the conversation engine for the bot.
func (t *TgBot) SetEngine(engine *chat.Engine) {
	t.engine = engine
}

// Start begins polling for updates and handling them. Blocks.
func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", t.handleMessage))
	dispatcher.AddHandler(handlers.NewCallback(bookingCallbackFilter, t.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.Contact, t.handleContact))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, t.handleMessage))

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.log.Info("bot started", slog.String("username", t.botUsername))

	// Idle, to keep updates coming in, and avoid bot stopping.
	updater.Idle()

	return nil
}

// bookingCallbackFilter filters callbacks that belong to the form flow.
func bookingCallbackFilter(cq *tgbotapi.CallbackQuery) bool {
	return chat.IsBookingCallback(cq.Data)
}

// handleMessage routes text messages into the engine. Slash commands and
// messages without an active session resolve to the welcome action there.
func (t *TgBot) handleMessage(bot *tgbotapi.Bot, ctx *ext.Context) error {
	if t.engine == nil {
		t.log.Warn("conversation engine not initialized")
		return nil
	}

	err := t.engine.HandleMessage(context.Background(), t.messenger,
		Platform,
		strconv.FormatInt(ctx.EffectiveUser.Id, 10),
		strconv.FormatInt(ctx.EffectiveChat.Id, 10),
		ctx.EffectiveUser.Username,
		ctx.EffectiveMessage.Text,
	)
	if err != nil {
		t.log.Error("engine message error",
			slog.Int64("user_id", ctx.EffectiveUser.Id),
			sl.Err(err),
		)
	}
	return err
}

// handleCallback routes inline keyboard callbacks into the engine.
func (t *TgBot) handleCallback(bot *tgbotapi.Bot, ctx *ext.Context) error {
	if t.engine == nil {
		return nil
	}

	cq := ctx.CallbackQuery
	if _, err := cq.Answer(bot, nil); err != nil {
		t.log.Debug("answering callback query", sl.Err(err))
	}

	messageID := ""
	if cq.Message != nil {
		messageID = strconv.FormatInt(cq.Message.GetMessageId(), 10)
	}

	err := t.engine.HandleCallback(context.Background(), t.messenger,
		Platform,
		strconv.FormatInt(ctx.EffectiveUser.Id, 10),
		strconv.FormatInt(ctx.EffectiveChat.Id, 10),
		ctx.EffectiveUser.Username,
		messageID,
		cq.Data,
	)
	if err != nil {
		t.log.Error("engine callback error",
			slog.Int64("user_id", ctx.EffectiveUser.Id),
			slog.String("data", cq.Data),
			sl.Err(err),
		)
	}
	return err
}

// handleContact routes shared contacts into the engine.
func (t *TgBot) handleContact(bot *tgbotapi.Bot, ctx *ext.Context) error {
	if t.engine == nil {
		return nil
	}

	contact := ctx.EffectiveMessage.Contact
	if contact == nil {
		return nil
	}

	err := t.engine.HandleContact(context.Background(), t.messenger,
		Platform,
		strconv.FormatInt(ctx.EffectiveUser.Id, 10),
		strconv.FormatInt(ctx.EffectiveChat.Id, 10),
		ctx.EffectiveUser.Username,
		contact.PhoneNumber,
	)
	if err != nil {
		t.log.Error("engine contact error",
			slog.Int64("user_id", ctx.EffectiveUser.Id),
			sl.Err(err),
		)
	}
	return err
}

// Notify delivers a staff notification to one roster entry. Entries must
// be numeric chat IDs; anything else is reported back to the caller.
func (t *TgBot) Notify(recipient, text string) error {
	id, err := strconv.ParseInt(recipient, 10, 64)
	if err != nil {
		return fmt.Errorf("recipient %q is not a chat id: %w", recipient, err)
	}
	_, err = t.api.SendMessage(id, text, nil)
	return err
}

// SendMessage mirrors a log record to the admin chat. Implements the
// logger's AdminNotifier.
func (t *TgBot) SendMessage(msg string) {
	if t.adminId == 0 {
		return
	}
	if _, err := t.api.SendMessage(t.adminId, msg, nil); err != nil {
		t.log.Warn("sending admin message", sl.Err(err))
	}
}
