package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds the bcrypt hash and never leaves the service layer.
//
// FollowingIDs/FollowerIDs are the stored references; Following/Followers
// are only filled when a read asks for them to be populated.
type User struct {
	ID           string
	Name         string
	Email        string
	Password     string
	Avatar       string
	FollowingIDs []string
	FollowerIDs  []string
	Following    []*User
	Followers    []*User
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsFollowing reports whether u follows userID.
func (u *User) IsFollowing(userID string) bool {
	return containsID(u.FollowingIDs, userID)
}

// IsFollowedBy reports whether userID follows u.
func (u *User) IsFollowedBy(userID string) bool {
	return containsID(u.FollowerIDs, userID)
}

// Clone returns a deep copy so callers never share state with the store.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.FollowingIDs = cloneIDs(u.FollowingIDs)
	c.FollowerIDs = cloneIDs(u.FollowerIDs)
	c.Following = cloneUsers(u.Following)
	c.Followers = cloneUsers(u.Followers)
	return &c
}

func cloneUsers(in []*User) []*User {
	if in == nil {
		return nil
	}
	out := make([]*User, len(in))
	for i, u := range in {
		out[i] = u.Clone()
	}
	return out
}

func cloneIDs(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
