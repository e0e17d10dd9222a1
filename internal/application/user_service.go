package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/internal/infrastructure/session"
	"github.com/oksasatya/icook-api/pkg/apperr"
	"github.com/oksasatya/icook-api/pkg/helpers"
	"github.com/oksasatya/icook-api/pkg/validation"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionStore records the active login of each user.
type SessionStore interface {
	SessionChecker
	Save(ctx context.Context, s session.Session) error
	Delete(ctx context.Context, userID string) error
}

type UserService struct {
	store    *repository.Store
	jwt      *helpers.JWTManager
	sessions SessionStore
	notifier *Notifier
	logger   *logrus.Logger
}

func NewUserService(store *repository.Store, jwt *helpers.JWTManager, sessions SessionStore, notifier *Notifier, logger *logrus.Logger) *UserService {
	return &UserService{store: store, jwt: jwt, sessions: sessions, notifier: notifier, logger: logger}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"min=3"`
	Email    string `json:"email" validate:"min=10,email"`
	Password string `json:"password" validate:"pwd"`
	Avatar   string `json:"avatar" validate:"omitempty,uri"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if details := validation.Struct(in); details != nil {
		return nil, apperr.InvalidInput("invalid user", details)
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Store("could not hash password", err)
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash, Avatar: in.Avatar}
	if err := s.store.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Store("could not create user", err)
	}
	s.notifier.Welcome(ctx, u)
	return s.FindUser(ctx, u.ID)
}

// Login checks credentials and issues an access token bound to a fresh session.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.store.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Store("could not load user", err)
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, &apperr.Error{Kind: apperr.KindUnauthenticated, Message: "invalid email or password", Err: ErrInvalidCredentials}
	}

	sid := uuid.NewString()
	token, exp, err := s.jwt.GenerateAccessToken(u.ID, sid)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, apperr.Store("could not issue token", err)
	}
	if s.sessions != nil {
		if err := s.sessions.Save(ctx, session.Session{UserID: u.ID, Email: u.Email, Name: u.Name, SessionID: sid}); err != nil {
			return nil, apperr.Store("could not record session", err)
		}
	}

	full, err := s.FindUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: full}, nil
}

func (s *UserService) FindUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.store.Users.GetByID(ctx, id, userGraph...)
	if err != nil {
		return nil, storeErr(err, "user not found", "could not load user")
	}
	return u, nil
}

// Many loads users by id without expansion, in the order given. Unknown ids are skipped.
func (s *UserService) Many(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	found, err := s.store.Users.GetMany(ctx, ids)
	if err != nil {
		return nil, apperr.Store("could not load users", err)
	}
	byID := make(map[string]*entity.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UserService) AllUsers(ctx context.Context) ([]*entity.User, error) {
	list, err := s.store.Users.List(ctx, userGraph...)
	if err != nil {
		return nil, apperr.Store("could not list users", err)
	}
	return list, nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	n, err := s.store.Users.Count(ctx)
	if err != nil {
		return 0, apperr.Store("could not count users", err)
	}
	return n, nil
}

type avatarInput struct {
	Avatar string `json:"avatarUri" validate:"required,uri"`
}

func (s *UserService) UpdateAvatar(ctx context.Context, id entity.Identity, avatar string) (*entity.User, error) {
	in := avatarInput{Avatar: strings.TrimSpace(avatar)}
	if details := validation.Struct(in); details != nil {
		return nil, apperr.InvalidInput("invalid avatar", details)
	}
	if err := s.store.Users.SetAvatar(ctx, id.UserID, in.Avatar); err != nil {
		return nil, storeErr(err, "user not found", "could not update avatar")
	}
	return s.FindUser(ctx, id.UserID)
}

// DeleteAccount removes the caller's account, drops it from every follow set
// and like set, and ends its session. Authored recipes and comments stay.
func (s *UserService) DeleteAccount(ctx context.Context, id entity.Identity, targetID string) error {
	if targetID != id.UserID {
		return apperr.Forbidden("you can only delete your own account")
	}
	u, err := s.store.Users.GetByID(ctx, targetID)
	if err != nil {
		return storeErr(err, "user not found", "could not load user")
	}
	if err := s.store.Users.Delete(ctx, u.ID); err != nil {
		return storeErr(err, "user not found", "could not delete user")
	}

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error { return s.store.Users.RemoveFromAllRelations(ctx, u.ID) })
	p.Go(func(ctx context.Context) error { return s.store.Recipes.RemoveLikesBy(ctx, u.ID) })
	p.Go(func(ctx context.Context) error { return s.store.Comments.RemoveLikesBy(ctx, u.ID) })
	if s.sessions != nil {
		p.Go(func(ctx context.Context) error { return s.sessions.Delete(ctx, u.ID) })
	}
	if err := p.Wait(); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("user_id", u.ID).Error("account cleanup incomplete")
		}
		return apperr.Store("account deleted but cleanup failed", err)
	}
	return nil
}
