package gql

import (
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"
)

// maxDepth bounds how far a query may walk the follow graph.
const maxDepth = 12

const schemaSDL = `
schema {
	query: Query
	mutation: Mutation
}

type DeleteResponse {
	message: String!
}

type User {
	id: ID!
	name: String!
	email: String!
	avatar: String
	following: [User!]!
	followers: [User!]!
	followingCount: Int!
	followersCount: Int!
	createdAt: String!
}

type LoginResponse {
	authToken: String!
	expiresAt: String!
	userInfo: User
}

type Category {
	id: ID!
	name: String!
}

type Step {
	step_number: Int!
	description: String!
}

type Recipe {
	id: ID!
	name: String!
	description: String!
	duration: Int!
	images: [String!]!
	author: User
	category: Category
	ingredients: [String!]!
	steps: [Step!]!
	likes: [User!]!
	createdAt: String!
	updatedAt: String!
}

type Comment {
	id: ID!
	author: User
	content: String!
	recipe: ID!
	likes: [User!]!
	createdAt: String!
	updatedAt: String!
}

input CreateUserInput {
	name: String!
	email: String!
	password: String!
	avatar: String
}

input LoginUserInput {
	email: String!
	password: String!
}

input CategoryInput {
	name: String!
}

input StepInput {
	step_number: Int!
	description: String!
}

input RecipeInput {
	name: String
	description: String
	duration: Int
	images: [String!]
	category: ID
	ingredients: [String!]
	steps: [StepInput!]
}

input PostCommentInput {
	content: String!
}

input EditCommentInput {
	idComment: ID!
	content: String!
}

type Query {
	userCount: Int!
	allUsers: [User!]!
	findUser(idUser: ID!): User
	me: User

	categoryCount: Int!
	allCategories: [Category!]!
	findCategory(idCategory: ID!): Category

	recipeCount: Int!
	allRecipes: [Recipe!]!
	findRecipe(idRecipe: ID!): Recipe
	recipesByCategory(idCategory: ID!): [Recipe!]!
	recipesByUser(idUser: ID!): [Recipe!]!
	searchRecipes(query: String!, size: Int = 10): [Recipe!]!

	commentsByRecipe(idRecipe: ID!): [Comment!]!
	commentsCountByRecipe(idRecipe: ID!): Int!
	allComments: [Comment!]!
	allCommentsCount: Int!
}

type Mutation {
	createUser(credentials: CreateUserInput!): User
	loginUser(credentials: LoginUserInput!): LoginResponse
	deleteUser(idUser: ID!): DeleteResponse
	updateAvatar(avatarUri: String!): User
	followUser(idUser: ID!): User
	unFollowUser(idUser: ID!): User

	createCategory(info: CategoryInput!): Category

	createRecipe(info: RecipeInput!): Recipe
	updateRecipe(idRecipe: ID!, info: RecipeInput!): Recipe
	deleteRecipe(idRecipe: ID!): DeleteResponse
	likeRecipe(idRecipe: ID!): Recipe
	unlikeRecipe(idRecipe: ID!): Recipe

	postComment(idRecipe: ID!, info: PostCommentInput!): Comment
	editComment(info: EditCommentInput!): Comment
	deleteComment(idComment: ID!): DeleteResponse
	likeComment(idComment: ID!): Comment
	unLikeComment(idComment: ID!): Comment
}
`

// NewSchema parses the SDL against the root resolver. A mismatch between the
// two is a programming error and fails here, at startup.
func NewSchema(svc Services, logger *logrus.Logger) (*graphql.Schema, error) {
	root := NewResolver(svc, logger)
	return graphql.ParseSchema(schemaSDL, root,
		graphql.MaxDepth(maxDepth),
		graphql.Logger(panicLogger{logger: root.logger}),
	)
}
