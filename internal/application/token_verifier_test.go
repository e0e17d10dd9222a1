package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/icook-api/pkg/helpers"
)

type fakeSessions map[string]string

func (f fakeSessions) ActiveSessionID(_ context.Context, userID string) (string, error) {
	sid, ok := f[userID]
	if !ok {
		return "", errors.New("no session")
	}
	return sid, nil
}

func TestTokenVerifier(t *testing.T) {
	store := newMemoryStore()
	u := mustUser(t, store, "1", "alice")
	jwt := helpers.NewJWTManager("secret", time.Hour)
	ctx := context.Background()

	tok, _, err := jwt.GenerateAccessToken(u.ID, "s1")
	require.NoError(t, err)

	t.Run("valid without session store", func(t *testing.T) {
		id, err := NewTokenVerifier(jwt, store.Users, nil).Verify(ctx, "Bearer "+tok)
		require.NoError(t, err)
		assert.Equal(t, "1", id.UserID)
		assert.Equal(t, "alice", id.Name)
		assert.Equal(t, "s1", id.SessionID)
	})

	t.Run("prefix is optional", func(t *testing.T) {
		_, err := NewTokenVerifier(jwt, store.Users, nil).Verify(ctx, tok)
		assert.NoError(t, err)
	})

	t.Run("active session matches", func(t *testing.T) {
		_, err := NewTokenVerifier(jwt, store.Users, fakeSessions{"1": "s1"}).Verify(ctx, "bearer "+tok)
		assert.NoError(t, err)
	})

	t.Run("revoked session", func(t *testing.T) {
		_, err := NewTokenVerifier(jwt, store.Users, fakeSessions{"1": "s2"}).Verify(ctx, "Bearer "+tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
		_, err = NewTokenVerifier(jwt, store.Users, fakeSessions{}).Verify(ctx, "Bearer "+tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("bad signature", func(t *testing.T) {
		other, _, err := helpers.NewJWTManager("other", time.Hour).GenerateAccessToken(u.ID, "")
		require.NoError(t, err)
		_, err = NewTokenVerifier(jwt, store.Users, nil).Verify(ctx, "Bearer "+other)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old, _, err := helpers.NewJWTManager("secret", -time.Minute).GenerateAccessToken(u.ID, "")
		require.NoError(t, err)
		_, err = NewTokenVerifier(jwt, store.Users, nil).Verify(ctx, "Bearer "+old)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewTokenVerifier(jwt, store.Users, nil).Verify(ctx, "Bearer   ")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown subject", func(t *testing.T) {
		ghost, _, err := jwt.GenerateAccessToken("404", "")
		require.NoError(t, err)
		_, err = NewTokenVerifier(jwt, store.Users, nil).Verify(ctx, "Bearer "+ghost)
		assert.ErrorIs(t, err, ErrUnknownSubject)
	})
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc", StripBearer("Bearer abc"))
	assert.Equal(t, "abc", StripBearer("  BEARER abc "))
	assert.Equal(t, "abc", StripBearer("abc"))
	assert.Equal(t, "", StripBearer(""))
	assert.Equal(t, "", StripBearer("Bearer"))
	assert.Equal(t, "", StripBearer(" bearer  "))
}
