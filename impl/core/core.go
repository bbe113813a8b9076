package core

import (
	"BoatSharing/internal/lib/sl"
	"errors"
	"log/slog"
)

// RecordStore reports whether the submission storage backend is reachable.
type RecordStore interface {
	Available() bool
}

// SubmissionCounter exposes the number of accepted intake submissions.
type SubmissionCounter interface {
	Accepted() int64
}

type Core struct {
	store   RecordStore
	counter SubmissionCounter
	authKey string
	log     *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("core")),
	}
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

func (c *Core) SetRecordStore(store RecordStore) {
	c.store = store
}

func (c *Core) SetSubmissionCounter(counter SubmissionCounter) {
	c.counter = counter
}

// ValidateToken checks an API token against the configured key. An empty
// configured key disables the authenticated endpoints entirely.
func (c *Core) ValidateToken(token string) error {
	if c.authKey == "" {
		return errors.New("api access disabled")
	}
	if token != c.authKey {
		return errors.New("invalid token")
	}
	return nil
}

func (c *Core) StoreAvailable() bool {
	return c.store != nil && c.store.Available()
}

func (c *Core) AcceptedSubmissions() int64 {
	if c.counter == nil {
		return 0
	}
	return c.counter.Accepted()
}
