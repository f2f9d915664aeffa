// Package session issues signed session tokens and tracks them in a revocable store.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "session"

var ErrInvalidToken = errors.New("invalid session token")

type Token struct {
	Value     string
	SessionID string
	ExpiresAt time.Time
}

type Claims struct {
	UserID    uuid.UUID
	SessionID string
}

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the user and records its session id.
func (m *Manager) Issue(ctx context.Context, userID uuid.UUID) (*Token, error) {
	now := time.Now()
	sessionID := uuid.NewString()
	expiresAt := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := m.store.Save(ctx, sessionID, userID, m.ttl); err != nil {
		return nil, err
	}

	return &Token{Value: signed, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

// Resolve validates the signature and expiry, then confirms the session was not revoked.
func (m *Manager) Resolve(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	registered, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || registered.ID == "" {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	storedID, err := m.store.Lookup(ctx, registered.ID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if storedID != userID {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, SessionID: registered.ID}, nil
}

func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, sessionID)
}
