package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/icook-api/internal/domain/entity"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserRelation names one side of the follow graph stored on a user document.
type UserRelation string

const (
	Following UserRelation = "following"
	Followers UserRelation = "followers"
)

// Valid reports whether rel names a stored side of the follow graph.
func (rel UserRelation) Valid() bool {
	return rel == Following || rel == Followers
}

// Populate names a reference field to resolve on read. Nested applies to
// each resolved document, one level deep.
type Populate struct {
	Path   string
	Nested []Populate
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string, populate ...Populate) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetMany(ctx context.Context, ids []string) ([]*entity.User, error)
	List(ctx context.Context, populate ...Populate) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
	SetAvatar(ctx context.Context, id, avatar string) error
	Delete(ctx context.Context, id string) error

	// AddRelation and RemoveRelation are single-document atomic set operations.
	AddRelation(ctx context.Context, id string, rel UserRelation, otherID string) error
	RemoveRelation(ctx context.Context, id string, rel UserRelation, otherID string) error
	// RemoveFromAllRelations pulls otherID from every user's following and followers.
	RemoveFromAllRelations(ctx context.Context, otherID string) error
}
