package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndResolve(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "secret", time.Hour)
	userID := uuid.New()

	token, err := m.Issue(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)

	claims, err := m.Resolve(ctx, token.Value)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, token.SessionID, claims.SessionID)
}

func TestRevokedSessionIsRejected(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "secret", time.Hour)

	token, err := m.Issue(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, token.SessionID))

	_, err = m.Resolve(ctx, token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	issuer := NewManager(store, "one", time.Hour)
	verifier := NewManager(store, "two", time.Hour)

	token, err := issuer.Issue(ctx, uuid.New())
	require.NoError(t, err)

	_, err = verifier.Resolve(ctx, token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().(*memoryStore)
	now := time.Now()
	store.now = func() time.Time { return now }

	userID := uuid.New()
	require.NoError(t, store.Save(ctx, "abc", userID, time.Minute))

	got, err := store.Lookup(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	now = now.Add(2 * time.Minute)
	_, err = store.Lookup(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
