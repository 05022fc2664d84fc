package repository

import (
	"context"

	"github.com/organizae/app/domain"
)

// TarefaInput carries the fields the tarefa form submits. The form always
// re-supplies the owning materia's id; it never moves a tarefa between
// materias.
type TarefaInput struct {
	Titulo    string              `json:"titulo"`
	Descricao *string             `json:"descricao"`
	Prazo     *string             `json:"prazo"`
	Status    domain.TarefaStatus `json:"status"`
	MateriaID int64               `json:"materiaId"`
}

type TarefaRepository interface {
	// List returns every tarefa of the current user across all materias.
	List(ctx context.Context) ([]domain.Tarefa, error)
	ListByMateria(ctx context.Context, materiaID int64) ([]domain.Tarefa, error)
	Create(ctx context.Context, input TarefaInput) (*domain.Tarefa, error)
	Update(ctx context.Context, id int64, input TarefaInput) (*domain.Tarefa, error)
	PatchStatus(ctx context.Context, id int64, status domain.TarefaStatus) error
	Delete(ctx context.Context, id int64) error
}
