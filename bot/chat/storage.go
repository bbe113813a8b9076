package chat

import (
	"context"
	"sync"
)

// MemorySessionStorage keeps sessions in process memory. This is the
// default: sessions live for the process lifetime or until deleted, and a
// restart simply forces the user to begin the form again.
type MemorySessionStorage struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemorySessionStorage creates an empty in-memory session storage.
func NewMemorySessionStorage() *MemorySessionStorage {
	return &MemorySessionStorage{
		sessions: make(map[string]*Session),
	}
}

func sessionKey(platform, userID string) string {
	return platform + ":" + userID
}

func (s *MemorySessionStorage) Save(_ context.Context, state *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey(state.Platform, state.UserID)] = state
	return nil
}

func (s *MemorySessionStorage) Load(_ context.Context, platform, userID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionKey(platform, userID)], nil
}

func (s *MemorySessionStorage) Delete(_ context.Context, platform, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey(platform, userID))
	return nil
}

// SessionRepository defines the database operations for form sessions.
type SessionRepository interface {
	SaveSession(ctx context.Context, state *Session) error
	LoadSession(ctx context.Context, platform, userID string) (*Session, error)
	DeleteSession(ctx context.Context, platform, userID string) error
}

// MongoSessionStorage adapts the database repository to SessionStorage,
// for deployments that want sessions to survive a process restart.
type MongoSessionStorage struct {
	repo SessionRepository
}

// NewMongoSessionStorage creates a new MongoDB session storage.
func NewMongoSessionStorage(repo SessionRepository) *MongoSessionStorage {
	return &MongoSessionStorage{repo: repo}
}

func (s *MongoSessionStorage) Save(ctx context.Context, state *Session) error {
	return s.repo.SaveSession(ctx, state)
}

func (s *MongoSessionStorage) Load(ctx context.Context, platform, userID string) (*Session, error) {
	return s.repo.LoadSession(ctx, platform, userID)
}

func (s *MongoSessionStorage) Delete(ctx context.Context, platform, userID string) error {
	return s.repo.DeleteSession(ctx, platform, userID)
}
