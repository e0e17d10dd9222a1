package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	tok, exp, err := m.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	tok, _, err := m.GenerateAccessToken("u1", "")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Minute).ParseAccessToken(tok)
	assert.Error(t, err)

	expired := NewJWTManager("secret", -time.Minute)
	old, _, err := expired.GenerateAccessToken("u1", "")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(old)
	assert.Error(t, err)

	_, err = m.ParseAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTManager_RejectsForeignIssuerAndAlg(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.ParseAccessToken(foreign)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.ParseAccessToken(hs512)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTManager_RequiresSubject(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	tok, _, err := m.GenerateAccessToken("", "")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, errNoSubject)
}
