package tarefa

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

type UseCase struct {
	tarefas repository.TarefaRepository
	logger  *zap.Logger
}

func New(tarefas repository.TarefaRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tarefas: tarefas,
		logger:  logger,
	}
}

// List returns every tarefa of the current user across all materias.
func (uc *UseCase) List(ctx context.Context) ([]domain.Tarefa, error) {
	return uc.tarefas.List(ctx)
}

// ListByMateria returns a materia's tarefas in display order.
func (uc *UseCase) ListByMateria(ctx context.Context, materiaID int64) ([]domain.Tarefa, error) {
	tarefas, err := uc.tarefas.ListByMateria(ctx, materiaID)
	if err != nil {
		return nil, err
	}
	SortByStatus(tarefas)
	return tarefas, nil
}

func (uc *UseCase) Create(ctx context.Context, input repository.TarefaInput) (*domain.Tarefa, error) {
	return uc.tarefas.Create(ctx, input)
}

func (uc *UseCase) Update(ctx context.Context, id int64, input repository.TarefaInput) (*domain.Tarefa, error) {
	return uc.tarefas.Update(ctx, id, input)
}

// ChangeStatus patches only the status at the gateway and, on success,
// reconciles the in-memory list in place: the matching tarefa's status is
// replaced and the list re-sorted by status precedence, without a refetch.
// On failure the input list is returned untouched; the patch is applied only
// after success is confirmed, so there is nothing to roll back.
func (uc *UseCase) ChangeStatus(ctx context.Context, tarefas []domain.Tarefa, id int64, status domain.TarefaStatus) ([]domain.Tarefa, error) {
	if err := uc.tarefas.PatchStatus(ctx, id, status); err != nil {
		return tarefas, err
	}

	updated := make([]domain.Tarefa, len(tarefas))
	copy(updated, tarefas)
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Status = status
			break
		}
	}
	SortByStatus(updated)
	return updated, nil
}

// Delete removes the tarefa remotely and reconciles the in-memory list by
// dropping the matching entry.
func (uc *UseCase) Delete(ctx context.Context, tarefas []domain.Tarefa, id int64) ([]domain.Tarefa, error) {
	if err := uc.tarefas.Delete(ctx, id); err != nil {
		return tarefas, err
	}

	updated := make([]domain.Tarefa, 0, len(tarefas))
	for _, t := range tarefas {
		if t.ID == id {
			continue
		}
		updated = append(updated, t)
	}
	return updated, nil
}

// SortByStatus orders tarefas by status precedence (pendente < em andamento
// < concluida), keeping the relative order among equal statuses.
func SortByStatus(tarefas []domain.Tarefa) {
	sort.SliceStable(tarefas, func(i, j int) bool {
		return tarefas[i].Status.Precedence() < tarefas[j].Status.Precedence()
	})
}

// CountAbertas returns how many tarefas are not yet concluded, for the
// dashboard's per-materia counters.
func CountAbertas(tarefas []domain.Tarefa, materiaID int64) int {
	count := 0
	for _, t := range tarefas {
		if t.MateriaID == materiaID && !t.IsConcluida() {
			count++
		}
	}
	return count
}
