package inmem

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core/session"
)

const cleanupInterval = 10 * time.Minute

// SessionStore keeps sessions in process memory. Every write restarts the session's TTL.
// Sessions are stored encoded so callers never share state with the store.
type SessionStore struct {
	mu    sync.Mutex // serialises updates
	cache *cache.Cache
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache.New(ttl, cleanupInterval)}
}

func (st *SessionStore) Create(_ context.Context, s session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	if err := st.cache.Add(s.ID, data, cache.DefaultExpiration); err != nil {
		return errors.Wrap(err, "adding session")
	}
	return nil
}

func (st *SessionStore) get(id string) (session.Session, error) {
	v, found := st.cache.Get(id)
	if !found {
		return session.Session{}, session.ErrNotFound
	}
	var s session.Session
	if err := json.Unmarshal(v.([]byte), &s); err != nil {
		return session.Session{}, errors.Wrap(err, "decoding session")
	}
	return s, nil
}

func (st *SessionStore) Get(_ context.Context, id string) (session.Session, error) {
	return st.get(id)
}

func (st *SessionStore) Update(_ context.Context, id string, fn func(s *session.Session) error) (session.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.get(id)
	if err != nil {
		return session.Session{}, err
	}
	if err = fn(&s); err != nil {
		return session.Session{}, err
	}
	s.ID = id
	s.UpdatedAt = session.NowFunc().UTC()

	data, err := json.Marshal(s)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "encoding session")
	}
	st.cache.Set(id, data, cache.DefaultExpiration)
	return s, nil
}

func (st *SessionStore) Delete(_ context.Context, id string) error {
	st.cache.Delete(id)
	return nil
}

// Len is the number of live sessions.
func (st *SessionStore) Len() int {
	return st.cache.ItemCount()
}
