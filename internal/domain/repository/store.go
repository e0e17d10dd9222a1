package repository

// Store bundles the repositories of one backing document database.
type Store struct {
	Users      UserRepository
	Recipes    RecipeRepository
	Comments   CommentRepository
	Categories CategoryRepository
}
