package repository

import "context"

// RegisterInput is the payload for POST /usuarios. The backend hashes the
// password; the client only validates it locally first.
type RegisterInput struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type UserRepository interface {
	Register(ctx context.Context, input RegisterInput) error
}
