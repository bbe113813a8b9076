package chat_test

import (
	"context"
	"testing"

	"BoatSharing/bot/chat"
)

func TestMemorySessionStorage_SaveLoadDelete(t *testing.T) {
	s := chat.NewMemorySessionStorage()
	ctx := context.Background()

	state := chat.NewSession("telegram", "42", "42", "ivan", "booking", "welcome")
	if err := s.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx, "telegram", "42")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.CurrentStep != "welcome" {
		t.Errorf("CurrentStep = %q, want %q", got.CurrentStep, "welcome")
	}
	if got.Handle != "ivan" {
		t.Errorf("Handle = %q, want %q", got.Handle, "ivan")
	}

	if err := s.Delete(ctx, "telegram", "42"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = s.Load(ctx, "telegram", "42")
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session after delete, got %+v", got)
	}
}

func TestMemorySessionStorage_KeyedByPlatformAndUser(t *testing.T) {
	s := chat.NewMemorySessionStorage()
	ctx := context.Background()

	if err := s.Save(ctx, chat.NewSession("telegram", "42", "42", "", "booking", "welcome")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx, "whatsapp", "42")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for other platform, got %+v", got)
	}
}

func TestMemorySessionStorage_LoadMissing(t *testing.T) {
	s := chat.NewMemorySessionStorage()

	got, err := s.Load(context.Background(), "telegram", "99")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}
