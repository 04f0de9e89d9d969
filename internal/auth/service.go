// Package auth issues the client tokens that scope storage namespaces.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"curator/internal/platform/crypto"
)

// DefaultTTL is how long a client token stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Client is a freshly issued identity.
type Client struct {
	ID        string    `json:"client_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	secret string
	ttl    time.Duration
	newID  func() string
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: secret,
		ttl:    ttl,
		newID:  func() string { return uuid.New().String() },
	}
}

// Register creates a new client id and its token.
func (s *Service) Register(ctx context.Context) (Client, error) {
	return s.Renew(ctx, s.newID())
}

// Renew issues a new token for an existing client id.
func (s *Service) Renew(ctx context.Context, clientID string) (Client, error) {
	token, exp, err := crypto.GenerateToken(s.secret, clientID, s.ttl)
	if err != nil {
		return Client{}, err
	}
	return Client{ID: clientID, Token: token, ExpiresAt: exp}, nil
}
