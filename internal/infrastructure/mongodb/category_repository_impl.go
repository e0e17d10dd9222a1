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
)

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	doc := categoryDoc{ID: primitive.NewObjectID(), Name: c.Name}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	o, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc categoryDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": o}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *CategoryRepository) GetMany(ctx context.Context, ids []string) ([]*entity.Category, error) {
	list := oids(ids)
	if len(list) == 0 {
		return []*entity.Category{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": list}})
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *CategoryRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*entity.Category, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
