// Package session holds the per-client portal state.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/gateway/core/assistant"
	"github.com/trezcool/gateway/core/finance"
	"github.com/trezcool/gateway/core/grade"
	"github.com/trezcool/gateway/core/nav"
	"github.com/trezcool/gateway/core/user"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrConflict = errors.New("session changed concurrently")
)

var NowFunc = time.Now // mockable

type Session struct {
	ID           string                 `json:"id"`
	Nav          nav.State              `json:"nav"`
	Calculator   grade.Calculator       `json:"calculator"`
	Plan         []string               `json:"plan"`      // planned offering IDs
	Dismissed    []int                  `json:"dismissed"` // checked off to-do items
	Conversation assistant.Conversation `json:"conversation"`
	Payments     []finance.Payment      `json:"payments"`
	CreatedAt    time.Time              `json:"created_at"` // UTC
	UpdatedAt    time.Time              `json:"updated_at"` // UTC
}

// New returns a fresh session on the landing view with the assistant's welcome message.
func New() Session {
	now := NowFunc().UTC()
	return Session{
		ID:           uuid.NewString(),
		Nav:          nav.Initial(),
		Conversation: assistant.NewConversation(now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// User returns the signed in user, if any.
func (s Session) User() (user.User, bool) {
	if !s.Nav.SignedIn() {
		return user.User{}, false
	}
	return *s.Nav.User, true
}

// Store keeps sessions for their TTL.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	// Update loads the session, applies fn and saves the result unless fn fails.
	// UpdatedAt is set by the store.
	Update(ctx context.Context, id string, fn func(s *Session) error) (Session, error)
	Delete(ctx context.Context, id string) error
}
