package repository

import (
	"context"

	"github.com/organizae/app/domain"
)

// MateriaInput carries the fields the materia forms submit. Optional fields
// are sent as null when empty, matching the backend contract.
type MateriaInput struct {
	Titulo    string               `json:"titulo"`
	Descricao *string              `json:"descricao"`
	Tipo      *string              `json:"tipo"`
	Prazo     *string              `json:"prazo"`
	Status    domain.MateriaStatus `json:"status,omitempty"`
}

type MateriaRepository interface {
	List(ctx context.Context) ([]domain.Materia, error)
	GetByID(ctx context.Context, id int64) (*domain.Materia, error)
	Create(ctx context.Context, input MateriaInput) (*domain.Materia, error)
	Update(ctx context.Context, id int64, input MateriaInput) (*domain.Materia, error)
	Delete(ctx context.Context, id int64) error
}
