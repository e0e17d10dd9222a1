package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/icook-api/internal/domain/repository"
)

// These cases return before the collection is touched, so no server is needed.
func TestUserRepository_RelationArguments(t *testing.T) {
	ctx := context.Background()
	r := &UserRepository{}
	a, b := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()

	assert.ErrorIs(t, r.AddRelation(ctx, a, repository.UserRelation("likes"), b), repository.ErrNotFound)
	assert.ErrorIs(t, r.RemoveRelation(ctx, a, repository.UserRelation(""), b), repository.ErrNotFound)

	assert.NoError(t, r.AddRelation(ctx, "not-an-id", repository.Following, b))
	assert.NoError(t, r.RemoveRelation(ctx, a, repository.Followers, "not-an-id"))
}

func TestOID(t *testing.T) {
	_, err := oid("xyz")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	want := primitive.NewObjectID()
	got, err := oid(want.Hex())
	assert.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, oids([]string{want.Hex(), "bad"}), 1)
}
