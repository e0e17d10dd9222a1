package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/pkg/helpers"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrUnknownSubject = errors.New("token subject does not exist")
)

// SessionChecker reports the session id currently active for a user.
type SessionChecker interface {
	ActiveSessionID(ctx context.Context, userID string) (string, error)
}

type Verifier interface {
	Verify(ctx context.Context, bearer string) (entity.Identity, error)
}

type TokenVerifier struct {
	jwt      *helpers.JWTManager
	users    repository.UserRepository
	sessions SessionChecker
}

// NewTokenVerifier builds a verifier. sessions may be nil, in which case
// revocation is not checked.
func NewTokenVerifier(jwt *helpers.JWTManager, users repository.UserRepository, sessions SessionChecker) *TokenVerifier {
	return &TokenVerifier{jwt: jwt, users: users, sessions: sessions}
}

// Verify resolves a bearer credential to the identity of an existing user.
func (v *TokenVerifier) Verify(ctx context.Context, bearer string) (entity.Identity, error) {
	raw := StripBearer(bearer)
	if raw == "" {
		return entity.Identity{}, ErrInvalidToken
	}
	claims, err := v.jwt.ParseAccessToken(raw)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if v.sessions != nil {
		sid, err := v.sessions.ActiveSessionID(ctx, claims.UserID)
		if err != nil {
			return entity.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		if sid != claims.SessionID {
			return entity.Identity{}, fmt.Errorf("%w: session revoked", ErrInvalidToken)
		}
	}
	u, err := v.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.Identity{}, ErrUnknownSubject
	}
	if err != nil {
		return entity.Identity{}, err
	}
	return entity.IdentityOf(u, claims.SessionID), nil
}

// StripBearer removes a case-insensitive "Bearer" scheme. A bare scheme
// with no credential yields "".
func StripBearer(h string) string {
	h = strings.TrimSpace(h)
	if strings.EqualFold(h, "bearer") {
		return ""
	}
	if len(h) >= 7 && strings.EqualFold(h[:7], "bearer ") {
		h = h[7:]
	}
	return strings.TrimSpace(h)
}
