package entity

// Identity is the resolved caller of an authenticated operation.
type Identity struct {
	UserID    string
	Name      string
	Email     string
	SessionID string
}

// IsZero reports whether no caller was resolved.
func (i Identity) IsZero() bool { return i.UserID == "" }

func IdentityOf(u *User, sessionID string) Identity {
	if u == nil {
		return Identity{}
	}
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email, SessionID: sessionID}
}
