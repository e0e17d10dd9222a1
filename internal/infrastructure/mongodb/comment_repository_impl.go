package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/internal/infrastructure/populate"
)

type CommentRepository struct {
	coll  *mongo.Collection
	users *UserRepository
}

func NewCommentRepository(db *mongo.Database, users *UserRepository) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection), users: users}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	author, err := oid(c.AuthorID)
	if err != nil {
		return err
	}
	recipe, err := oid(c.RecipeID)
	if err != nil {
		return err
	}
	ts := now()
	doc := commentDoc{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Content:   c.Content,
		Recipe:    recipe,
		Likes:     []primitive.ObjectID{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	c.ID = doc.ID.Hex()
	c.LikeIDs = []string{}
	c.CreatedAt, c.UpdatedAt = ts, ts
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string, specs ...repository.Populate) (*entity.Comment, error) {
	o, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc commentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": o}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c := doc.toEntity()
	if err := populate.Comments(ctx, r.users, []*entity.Comment{c}, specs); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByRecipe(ctx context.Context, recipeID string, specs ...repository.Populate) ([]*entity.Comment, error) {
	o, err := oid(recipeID)
	if err != nil {
		return []*entity.Comment{}, nil
	}
	return r.list(ctx, bson.M{"recipe": o}, specs)
}

func (r *CommentRepository) List(ctx context.Context, specs ...repository.Populate) ([]*entity.Comment, error) {
	return r.list(ctx, bson.M{}, specs)
}

func (r *CommentRepository) list(ctx context.Context, filter bson.M, specs []repository.Populate) ([]*entity.Comment, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*entity.Comment, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	if err := populate.Comments(ctx, r.users, out, specs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CommentRepository) CountByRecipe(ctx context.Context, recipeID string) (int64, error) {
	o, err := oid(recipeID)
	if err != nil {
		return 0, nil
	}
	return r.coll.CountDocuments(ctx, bson.M{"recipe": o})
}

func (r *CommentRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *CommentRepository) SetContent(ctx context.Context, id, content string) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": o}, bson.M{"$set": bson.M{"content": content, "updatedAt": now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
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

func (r *CommentRepository) AddLike(ctx context.Context, id, userID string) error {
	return likeUpdate(ctx, r.coll, "$addToSet", id, userID)
}

func (r *CommentRepository) RemoveLike(ctx context.Context, id, userID string) error {
	return likeUpdate(ctx, r.coll, "$pull", id, userID)
}

func (r *CommentRepository) RemoveLikesBy(ctx context.Context, userID string) error {
	return pullLikesEverywhere(ctx, r.coll, userID)
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
