package session

import (
	"context"
	"errors"
	"time"

	"oauth-userdata/internal/utils"
)

var ErrInvalidSession = errors.New("session: missing session_id or user_id")

// Session points at the user a browser is logged in as and the provider
// that authenticated them.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions. Get returns (nil, nil) for unknown ids.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// New builds a session with a fresh id. 32 bytes = 256 bits of entropy.
func New(userID, provider string, ttl time.Duration) (Session, error) {
	id, err := utils.RandomString(32)
	if err != nil {
		return Session{}, err
	}

	now := time.Now()
	return Session{
		SessionID: id,
		UserID:    userID,
		Provider:  provider,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}
