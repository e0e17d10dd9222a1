package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/icook-api/config"
	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/infrastructure/session"
	"github.com/oksasatya/icook-api/pkg/apperr"
	"github.com/oksasatya/icook-api/pkg/helpers"
	"github.com/oksasatya/icook-api/pkg/mailer"
	mailtpl "github.com/oksasatya/icook-api/pkg/mailer/templates"
)

type memSessions struct {
	saved   map[string]session.Session
	deleted []string
}

func (m *memSessions) ActiveSessionID(_ context.Context, userID string) (string, error) {
	s, ok := m.saved[userID]
	if !ok {
		return "", session.ErrNoSession
	}
	return s.SessionID, nil
}

func (m *memSessions) Save(_ context.Context, s session.Session) error {
	m.saved[s.UserID] = s
	return nil
}

func (m *memSessions) Delete(_ context.Context, userID string) error {
	delete(m.saved, userID)
	m.deleted = append(m.deleted, userID)
	return nil
}

func newUserFixture(t *testing.T) (*UserService, *memSessions, *fakePublisher) {
	t.Helper()
	emails := &fakePublisher{}
	sessions := &memSessions{saved: map[string]session.Session{}}
	svc := NewUserService(newMemoryStore(), helpers.NewJWTManager("secret", time.Hour), sessions,
		NewNotifier(emails, &config.Config{}, quietLogger()), quietLogger())
	return svc, sessions, emails
}

func TestRegisterAndLogin(t *testing.T) {
	svc, sessions, emails := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "Alice@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "password1", u.Password)
	require.Len(t, emails.Jobs(), 1)
	assert.Equal(t, mailtpl.Welcome, emails.Jobs()[0].(mailer.EmailJob).Template)

	_, err = svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password1"})
	assert.Equal(t, "DUPLICATED", apperr.KindOf(err).Code())

	_, err = svc.Login(ctx, "alice@example.com", "wrong-pass")
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
	_, err = svc.Login(ctx, "nobody@example.com", "password1")
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))

	res, err := svc.Login(ctx, "alice@example.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, u.ID, res.User.ID)

	// the issued token verifies against the recorded session
	id, err := NewTokenVerifier(svc.jwt, svc.store.Users, sessions).Verify(ctx, "Bearer "+res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)

	// a second login revokes the first token
	_, err = svc.Login(ctx, "alice@example.com", "password1")
	require.NoError(t, err)
	_, err = NewTokenVerifier(svc.jwt, svc.store.Users, sessions).Verify(ctx, "Bearer "+res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	_, err := svc.Register(context.Background(), RegisterInput{Name: "Al", Email: "a@b.c", Password: "short"})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindInvalidInput, ae.Kind)
	assert.Contains(t, ae.Details, "name")
	assert.Contains(t, ae.Details, "email")
	assert.Equal(t, "must be 8 to 72 characters long", ae.Details["password"])
}

func TestUpdateAvatar(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()
	u := mustUser(t, svc.store, "1", "alice")

	got, err := svc.UpdateAvatar(ctx, entity.IdentityOf(u, ""), "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", got.Avatar)

	_, err = svc.UpdateAvatar(ctx, entity.IdentityOf(u, ""), "")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestDeleteAccount(t *testing.T) {
	svc, sessions, _ := newUserFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")
	rel := NewRelationService(svc.store, nil, nil, quietLogger())
	_, err := rel.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.NoError(t, err)
	_, err = rel.Follow(ctx, entity.IdentityOf(b, ""), a.ID)
	require.NoError(t, err)
	r := mustRecipe(t, svc.store, b.ID, "")
	_, err = rel.LikeRecipe(ctx, entity.IdentityOf(a, ""), r.ID)
	require.NoError(t, err)

	err = svc.DeleteAccount(ctx, entity.IdentityOf(b, ""), a.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	require.NoError(t, svc.DeleteAccount(ctx, entity.IdentityOf(a, ""), a.ID))
	assert.Equal(t, []string{"1"}, sessions.deleted)

	_, err = svc.FindUser(ctx, a.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	ub, err := svc.FindUser(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, ub.FollowerIDs)
	assert.Empty(t, ub.FollowingIDs)
	rr, err := svc.store.Recipes.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, rr.LikeIDs)
}

func TestCountAndList(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()
	mustUser(t, svc.store, "1", "alice")
	mustUser(t, svc.store, "2", "bob")

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	all, err := svc.AllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
