package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// AdminNotifier delivers a plain-text message to the admin chat.
type AdminNotifier interface {
	SendMessage(msg string)
}

// telegramHandler mirrors records at or above a threshold level to the
// admin chat while delegating everything to the wrapped handler.
type telegramHandler struct {
	inner    slog.Handler
	notifier AdminNotifier
	level    slog.Level
}

// SetupTelegramHandler wraps an existing logger so that records at or above
// minLevel are also sent to the admin chat.
func SetupTelegramHandler(log *slog.Logger, notifier AdminNotifier, minLevel slog.Level) *slog.Logger {
	return slog.New(&telegramHandler{
		inner:    log.Handler(),
		notifier: notifier,
		level:    minLevel,
	})
}

func (h *telegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *telegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level && h.notifier != nil {
		text := fmt.Sprintf("[%s] %s", r.Level, r.Message)
		r.Attrs(func(a slog.Attr) bool {
			text += fmt.Sprintf("\n%s: %s", a.Key, a.Value)
			return true
		})
		h.notifier.SendMessage(text)
	}
	return h.inner.Handle(ctx, r)
}

func (h *telegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &telegramHandler{inner: h.inner.WithAttrs(attrs), notifier: h.notifier, level: h.level}
}

func (h *telegramHandler) WithGroup(name string) slog.Handler {
	return &telegramHandler{inner: h.inner.WithGroup(name), notifier: h.notifier, level: h.level}
}
