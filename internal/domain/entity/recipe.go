package entity

import (
	"sort"
	"time"
)

type Step struct {
	Number      int
	Description string
}

// Recipe is owned by its author. Likes is a set of user ids.
type Recipe struct {
	ID          string
	AuthorID    string
	CategoryID  string
	Name        string
	Description string
	Duration    int
	Images      []string
	Ingredients []string
	Steps       []Step
	LikeIDs     []string

	// populated references
	Author   *User
	Category *Category
	Likes    []*User

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SortSteps orders steps ascending by step number. Equal numbers keep their stored order.
func (r *Recipe) SortSteps() {
	sortSteps(r.Steps)
}

// SortedSteps returns an ordered copy and leaves steps untouched.
func SortedSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	sortSteps(out)
	return out
}

func sortSteps(steps []Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Number < steps[j].Number
	})
}

func (r *Recipe) LikedBy(userID string) bool {
	return containsID(r.LikeIDs, userID)
}

func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	c := *r
	c.Images = cloneIDs(r.Images)
	c.Ingredients = cloneIDs(r.Ingredients)
	if r.Steps != nil {
		c.Steps = make([]Step, len(r.Steps))
		copy(c.Steps, r.Steps)
	}
	c.LikeIDs = cloneIDs(r.LikeIDs)
	c.Author = r.Author.Clone()
	c.Category = r.Category.Clone()
	c.Likes = cloneUsers(r.Likes)
	return &c
}
