package chat_test

import (
	"testing"

	"BoatSharing/bot/chat"
)

func TestParseCallback(t *testing.T) {
	cb := chat.ParseCallback("bk:start")
	if cb == nil {
		t.Fatal("expected callback, got nil")
	}
	if !cb.IsStart() {
		t.Errorf("IsStart() = false, want true")
	}

	cb = chat.ParseCallback("bk:confirm")
	if cb == nil || !cb.IsConfirm() {
		t.Errorf("expected confirm callback, got %+v", cb)
	}

	cb = chat.ParseCallback("bk:cancel:reason")
	if cb == nil || !cb.IsCancel() {
		t.Fatalf("expected cancel callback, got %+v", cb)
	}
	if cb.Value != "reason" {
		t.Errorf("Value = %q, want %q", cb.Value, "reason")
	}

	if cb := chat.ParseCallback("other:start"); cb != nil {
		t.Errorf("expected nil for foreign prefix, got %+v", cb)
	}
}

func TestBuildCallback(t *testing.T) {
	if got := chat.BuildCallback(chat.ActionStart); got != "bk:start" {
		t.Errorf("BuildCallback(start) = %q, want %q", got, "bk:start")
	}
	if got := chat.BuildCallback(chat.ActionCancel, "reason"); got != "bk:cancel:reason" {
		t.Errorf("BuildCallback(cancel, reason) = %q, want %q", got, "bk:cancel:reason")
	}
}

func TestIsBookingCallback(t *testing.T) {
	if !chat.IsBookingCallback("bk:confirm") {
		t.Error("IsBookingCallback(bk:confirm) = false, want true")
	}
	if chat.IsBookingCallback("menu:open") {
		t.Error("IsBookingCallback(menu:open) = true, want false")
	}
}
