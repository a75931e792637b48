package models

// User is a team member. Tasks and notifications refer to users by ID only.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

// GetID lets output formatters print just the ID in quiet mode
func (u *User) GetID() int {
	return u.ID
}

// UserPatch carries a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Apply merges the patch into u
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}

// FindUser returns the user with the given ID, or nil
func FindUser(users []User, id *int) *User {
	if id == nil {
		return nil
	}
	for i := range users {
		if users[i].ID == *id {
			return &users[i]
		}
	}
	return nil
}
