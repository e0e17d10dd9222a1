package entity

import "time"

type Comment struct {
	ID       string
	AuthorID string
	RecipeID string
	Content  string
	LikeIDs  []string

	Author *User
	Likes  []*User

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) LikedBy(userID string) bool {
	return containsID(c.LikeIDs, userID)
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cp := *c
	cp.LikeIDs = cloneIDs(c.LikeIDs)
	cp.Author = c.Author.Clone()
	cp.Likes = cloneUsers(c.Likes)
	return &cp
}
