package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "icook-api"

var errNoSubject = errors.New("token has no subject")

// JWTManager signs and checks HS256 access tokens. A token carries the user
// id and the login session it was issued for.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

type Claims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken returns the signed token and its expiry.
func (m *JWTManager) GenerateAccessToken(userID, sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:    userID,
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}).SignedString(m.secret)
	return s, exp, err
}

// ParseAccessToken verifies signature, issuer and expiry and returns the claims.
func (m *JWTManager) ParseAccessToken(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errNoSubject
	}
	return claims, nil
}
