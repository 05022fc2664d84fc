package repository

import (
	"context"

	"github.com/organizae/app/domain"
)

// SessionStore persists the current session between runs. Load returns
// domain.ErrSessionNotFound when no session is stored.
type SessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}
