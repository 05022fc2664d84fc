package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

// SessionGateway is the slice of the session manager this use case needs.
type SessionGateway interface {
	CurrentUser() *domain.User
	UpdateUser(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
}

// Validator checks form input locally; no request is issued when it fails.
type Validator interface {
	Email(email string) error
	Password(senha string) error
	Required(fields map[string]string) error
	PasswordChange(nova, confirmacao string) error
}

type UseCase struct {
	sessions SessionGateway
	users    repository.UserRepository
	validate Validator
	logger   *zap.Logger
}

func New(sessions SessionGateway, users repository.UserRepository, validate Validator, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		users:    users,
		validate: validate,
		logger:   logger,
	}
}

// UpdateNome changes the display name of the current user. The e-mail is
// immutable after registration and is never re-submitted.
func (uc *UseCase) UpdateNome(ctx context.Context, nome string) (*domain.User, error) {
	if err := uc.validate.Required(map[string]string{"nome": nome}); err != nil {
		return nil, err
	}
	return uc.sessions.UpdateUser(ctx, domain.ProfileUpdate{
		Data: map[string]string{"nome_completo": nome},
	})
}

// ChangePassword validates the new password pair locally and then pushes the
// change to the identity provider.
func (uc *UseCase) ChangePassword(ctx context.Context, nova, confirmacao string) error {
	if err := uc.validate.PasswordChange(nova, confirmacao); err != nil {
		return err
	}
	_, err := uc.sessions.UpdateUser(ctx, domain.ProfileUpdate{Password: &nova})
	return err
}

// Register creates a new account through the backend, which owns hashing and
// the authoritative copy of the password rule.
func (uc *UseCase) Register(ctx context.Context, input repository.RegisterInput) error {
	if err := uc.validate.Required(map[string]string{
		"nome":  input.Nome,
		"email": input.Email,
		"senha": input.Senha,
	}); err != nil {
		return err
	}
	if err := uc.validate.Email(input.Email); err != nil {
		return err
	}
	if err := uc.validate.Password(input.Senha); err != nil {
		return err
	}
	return uc.users.Register(ctx, input)
}
