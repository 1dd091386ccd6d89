package cart

import (
	"context"

	"github.com/pkg/errors"

	"go-retrofit/models"
	"go-retrofit/storage"
)

// KeyPrefix namespaces carts in the blob store.
const KeyPrefix = "carts/"

// SessionStore keeps one cart per browser session.
type SessionStore struct {
	store storage.Store
	check ContextCheck
}

// NewSessionStore returns a SessionStore whose carts compare vehicles with check.
func NewSessionStore(store storage.Store, check ContextCheck) *SessionStore {
	return &SessionStore{store: store, check: check}
}

func sessionKey(sessionID string) (string, error) {
	key := KeyPrefix + sessionID
	if err := storage.ValidateKey(key); err != nil {
		return "", errors.Wrap(err, "cart session")
	}
	return key, nil
}

// Load returns the session's cart, or an empty cart for a new session.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	key, err := sessionKey(sessionID)
	if err != nil {
		return nil, err
	}
	c := New(s.check)
	if _, err := storage.GetJSON(ctx, s.store, key, c); err != nil {
		return nil, errors.Wrapf(err, "load %s", key)
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return c, nil
}

// Save persists c for the session.
func (s *SessionStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	key, err := sessionKey(sessionID)
	if err != nil {
		return err
	}
	return errors.Wrapf(storage.SetJSON(ctx, s.store, key, c), "save %s", key)
}
