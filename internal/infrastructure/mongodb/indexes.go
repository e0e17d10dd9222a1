package mongodb

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
// It is idempotent and runs on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *logrus.Logger) error {
	plan := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		categoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		recipesCollection: {
			{Keys: bson.D{{Key: "author", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "recipe", Value: 1}}},
		},
	}
	for coll, models := range plan {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return err
		}
		if logger != nil {
			logger.WithField("collection", coll).WithField("indexes", names).Debug("indexes ensured")
		}
	}
	return nil
}
