package domain

import "time"

// Session represents the tokens and identity issued by the identity provider.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user,omitempty"`
}

// IsExpired reports whether the access token has expired relative to the
// provided reference time.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !s.ExpiresAt.After(reference)
}
