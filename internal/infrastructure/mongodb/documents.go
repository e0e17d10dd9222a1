package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/icook-api/internal/domain/entity"
)

// collection names
const (
	usersCollection      = "users"
	recipesCollection    = "recipes"
	commentsCollection   = "comments"
	categoriesCollection = "categories"
)

type userDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Email     string               `bson:"email"`
	Password  string               `bson:"password"`
	Avatar    string               `bson:"avatar,omitempty"`
	Following []primitive.ObjectID `bson:"following"`
	Followers []primitive.ObjectID `bson:"followers"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type stepDoc struct {
	StepNumber  int    `bson:"step_number"`
	Description string `bson:"description"`
}

type recipeDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Duration    int                  `bson:"duration"`
	Images      []string             `bson:"images"`
	Author      primitive.ObjectID   `bson:"author"`
	Category    primitive.ObjectID   `bson:"category,omitempty"`
	Ingredients []string             `bson:"ingredients"`
	Steps       []stepDoc            `bson:"steps"`
	Likes       []primitive.ObjectID `bson:"likes"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type commentDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Author    primitive.ObjectID   `bson:"author"`
	Content   string               `bson:"content"`
	Recipe    primitive.ObjectID   `bson:"recipe"`
	Likes     []primitive.ObjectID `bson:"likes"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type categoryDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (d *userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Password:     d.Password,
		Avatar:       d.Avatar,
		FollowingIDs: hexes(d.Following),
		FollowerIDs:  hexes(d.Followers),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d *recipeDoc) toEntity() *entity.Recipe {
	steps := make([]entity.Step, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, entity.Step{Number: s.StepNumber, Description: s.Description})
	}
	r := &entity.Recipe{
		ID:          d.ID.Hex(),
		AuthorID:    d.Author.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Duration:    d.Duration,
		Images:      d.Images,
		Ingredients: d.Ingredients,
		Steps:       steps,
		LikeIDs:     hexes(d.Likes),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if !d.Category.IsZero() {
		r.CategoryID = d.Category.Hex()
	}
	return r
}

func (d *commentDoc) toEntity() *entity.Comment {
	return &entity.Comment{
		ID:        d.ID.Hex(),
		AuthorID:  d.Author.Hex(),
		RecipeID:  d.Recipe.Hex(),
		Content:   d.Content,
		LikeIDs:   hexes(d.Likes),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d *categoryDoc) toEntity() *entity.Category {
	return &entity.Category{ID: d.ID.Hex(), Name: d.Name}
}

func stepDocs(steps []entity.Step) []stepDoc {
	out := make([]stepDoc, 0, len(steps))
	for _, s := range steps {
		out = append(out, stepDoc{StepNumber: s.Number, Description: s.Description})
	}
	return out
}
