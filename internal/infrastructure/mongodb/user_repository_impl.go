package mongodb

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/internal/infrastructure/populate"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	ts := now()
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Name:      u.Name,
		Email:     strings.ToLower(u.Email),
		Password:  u.Password,
		Avatar:    u.Avatar,
		Following: []primitive.ObjectID{},
		Followers: []primitive.ObjectID{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	u.ID = doc.ID.Hex()
	u.Email = doc.Email
	u.FollowingIDs, u.FollowerIDs = []string{}, []string{}
	u.CreatedAt, u.UpdatedAt = ts, ts
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string, specs ...repository.Populate) (*entity.User, error) {
	o, err := oid(id)
	if err != nil {
		return nil, err
	}
	u, err := r.findOne(ctx, bson.M{"_id": o})
	if err != nil {
		return nil, err
	}
	if err := populate.Users(ctx, r, []*entity.User{u}, specs); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) GetMany(ctx context.Context, ids []string) ([]*entity.User, error) {
	list := oids(ids)
	if len(list) == 0 {
		return []*entity.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": list}})
}

func (r *UserRepository) List(ctx context.Context, specs ...repository.Populate) ([]*entity.User, error) {
	out, err := r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	if err := populate.Users(ctx, r, out, specs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*entity.User, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) SetAvatar(ctx context.Context, id, avatar string) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": o}, bson.M{"$set": bson.M{"avatar": avatar, "updatedAt": now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": o})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AddRelation(ctx context.Context, id string, rel repository.UserRelation, otherID string) error {
	return r.updateRelation(ctx, "$addToSet", id, rel, otherID)
}

func (r *UserRepository) RemoveRelation(ctx context.Context, id string, rel repository.UserRelation, otherID string) error {
	return r.updateRelation(ctx, "$pull", id, rel, otherID)
}

// updateRelation issues one atomic single-document update. A filter that
// matches nothing is not an error, and neither is a malformed id, which
// cannot match anything either. Unknown relation names are ErrNotFound.
func (r *UserRepository) updateRelation(ctx context.Context, op, id string, rel repository.UserRelation, otherID string) error {
	if !rel.Valid() {
		return repository.ErrNotFound
	}
	o, err := oid(id)
	if err != nil {
		return nil
	}
	other, err := oid(otherID)
	if err != nil {
		return nil
	}
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": o},
		bson.M{
			op:     bson.M{string(rel): other},
			"$set": bson.M{"updatedAt": now()},
		},
	)
	return err
}

func (r *UserRepository) RemoveFromAllRelations(ctx context.Context, otherID string) error {
	other, err := oid(otherID)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateMany(ctx,
		bson.M{"$or": bson.A{bson.M{"following": other}, bson.M{"followers": other}}},
		bson.M{"$pull": bson.M{"following": other, "followers": other}},
	)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
