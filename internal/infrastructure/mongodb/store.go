package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/icook-api/internal/domain/repository"
)

// NewStore wires every repository onto one database handle.
func NewStore(db *mongo.Database) *repository.Store {
	users := NewUserRepository(db)
	categories := NewCategoryRepository(db)
	return &repository.Store{
		Users:      users,
		Recipes:    NewRecipeRepository(db, users, categories),
		Comments:   NewCommentRepository(db, users),
		Categories: categories,
	}
}

func now() time.Time { return time.Now().UTC() }
