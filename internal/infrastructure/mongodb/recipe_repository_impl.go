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

type RecipeRepository struct {
	coll       *mongo.Collection
	users      *UserRepository
	categories *CategoryRepository
}

func NewRecipeRepository(db *mongo.Database, users *UserRepository, categories *CategoryRepository) *RecipeRepository {
	return &RecipeRepository{coll: db.Collection(recipesCollection), users: users, categories: categories}
}

func (r *RecipeRepository) Create(ctx context.Context, rec *entity.Recipe) error {
	author, err := oid(rec.AuthorID)
	if err != nil {
		return err
	}
	ts := now()
	doc := recipeDoc{
		ID:          primitive.NewObjectID(),
		Name:        rec.Name,
		Description: rec.Description,
		Duration:    rec.Duration,
		Images:      nonNil(rec.Images),
		Author:      author,
		Ingredients: nonNil(rec.Ingredients),
		Steps:       stepDocs(rec.Steps),
		Likes:       []primitive.ObjectID{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if rec.CategoryID != "" {
		cat, err := oid(rec.CategoryID)
		if err != nil {
			return err
		}
		doc.Category = cat
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	rec.ID = doc.ID.Hex()
	rec.LikeIDs = []string{}
	rec.CreatedAt, rec.UpdatedAt = ts, ts
	return nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id string, specs ...repository.Populate) (*entity.Recipe, error) {
	o, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc recipeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": o}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	rec := doc.toEntity()
	if err := populate.Recipes(ctx, r.users, r.categories, []*entity.Recipe{rec}, specs); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) List(ctx context.Context, f repository.RecipeFilter, specs ...repository.Populate) ([]*entity.Recipe, error) {
	filter := bson.M{}
	if f.AuthorID != "" {
		o, err := oid(f.AuthorID)
		if err != nil {
			return []*entity.Recipe{}, nil
		}
		filter["author"] = o
	}
	if f.CategoryID != "" {
		o, err := oid(f.CategoryID)
		if err != nil {
			return []*entity.Recipe{}, nil
		}
		filter["category"] = o
	}
	if f.IDs != nil {
		filter["_id"] = bson.M{"$in": oids(f.IDs)}
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []recipeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*entity.Recipe, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	if err := populate.Recipes(ctx, r.users, r.categories, out, specs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *RecipeRepository) Update(ctx context.Context, id string, upd repository.RecipeUpdate) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	set := bson.M{"updatedAt": now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Duration != nil {
		set["duration"] = *upd.Duration
	}
	if upd.Images != nil {
		set["images"] = nonNil(*upd.Images)
	}
	if upd.CategoryID != nil {
		cat, err := oid(*upd.CategoryID)
		if err != nil {
			return err
		}
		set["category"] = cat
	}
	if upd.Ingredients != nil {
		set["ingredients"] = nonNil(*upd.Ingredients)
	}
	if upd.Steps != nil {
		set["steps"] = stepDocs(*upd.Steps)
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": o}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
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

func (r *RecipeRepository) AddLike(ctx context.Context, id, userID string) error {
	return likeUpdate(ctx, r.coll, "$addToSet", id, userID)
}

func (r *RecipeRepository) RemoveLike(ctx context.Context, id, userID string) error {
	return likeUpdate(ctx, r.coll, "$pull", id, userID)
}

func (r *RecipeRepository) RemoveLikesBy(ctx context.Context, userID string) error {
	return pullLikesEverywhere(ctx, r.coll, userID)
}

// likeUpdate applies a set operation to the likes array of one document.
func likeUpdate(ctx context.Context, coll *mongo.Collection, op, id, userID string) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	u, err := oid(userID)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": o}, bson.M{op: bson.M{"likes": u}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func pullLikesEverywhere(ctx context.Context, coll *mongo.Collection, userID string) error {
	u, err := oid(userID)
	if err != nil {
		return err
	}
	_, err = coll.UpdateMany(ctx, bson.M{"likes": u}, bson.M{"$pull": bson.M{"likes": u}})
	return err
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
