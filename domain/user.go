package domain

import "time"

// User represents the authenticated identity as issued by the identity
// provider. Profile fields the application edits live under Metadata.
type User struct {
	ID        string            `json:"id"`
	Email     string            `json:"email,omitempty"`
	Metadata  map[string]string `json:"user_metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ProfileUpdate carries the mutable fields of the current user as accepted
// by the identity provider. Nil fields are left untouched.
type ProfileUpdate struct {
	Email    *string           `json:"email,omitempty"`
	Password *string           `json:"password,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
}

// NomeCompleto returns the display name stored in the user metadata.
func (u *User) NomeCompleto() string {
	if u == nil {
		return ""
	}
	return u.Metadata["nome_completo"]
}
