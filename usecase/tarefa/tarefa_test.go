package tarefa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

type fakeTarefaRepo struct {
	tarefas    []domain.Tarefa
	patchCalls []int64
	patchErr   error
	deleteErr  error
}

func (f *fakeTarefaRepo) List(ctx context.Context) ([]domain.Tarefa, error) {
	return f.tarefas, nil
}

func (f *fakeTarefaRepo) ListByMateria(ctx context.Context, materiaID int64) ([]domain.Tarefa, error) {
	var out []domain.Tarefa
	for _, t := range f.tarefas {
		if t.MateriaID == materiaID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTarefaRepo) Create(ctx context.Context, input repository.TarefaInput) (*domain.Tarefa, error) {
	return &domain.Tarefa{ID: 99, Titulo: input.Titulo, Status: input.Status, MateriaID: input.MateriaID}, nil
}

func (f *fakeTarefaRepo) Update(ctx context.Context, id int64, input repository.TarefaInput) (*domain.Tarefa, error) {
	return &domain.Tarefa{ID: id, Titulo: input.Titulo, Status: input.Status, MateriaID: input.MateriaID}, nil
}

func (f *fakeTarefaRepo) PatchStatus(ctx context.Context, id int64, status domain.TarefaStatus) error {
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patchCalls = append(f.patchCalls, id)
	return nil
}

func (f *fakeTarefaRepo) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

func TestSortByStatusIsStable(t *testing.T) {
	tarefas := []domain.Tarefa{
		{ID: 1, Status: domain.TarefaConcluida},
		{ID: 2, Status: domain.TarefaPendente},
		{ID: 3, Status: domain.TarefaEmAndamento},
		{ID: 4, Status: domain.TarefaPendente},
	}

	SortByStatus(tarefas)

	ids := []int64{tarefas[0].ID, tarefas[1].ID, tarefas[2].ID, tarefas[3].ID}
	// pendentes keep their relative order
	assert.Equal(t, []int64{2, 4, 3, 1}, ids)
}

func TestChangeStatusReconcilesWithoutRefetch(t *testing.T) {
	repo := &fakeTarefaRepo{}
	uc := New(repo, nil)

	tarefas := []domain.Tarefa{
		{ID: 1, Status: domain.TarefaConcluida},
		{ID: 2, Status: domain.TarefaPendente},
		{ID: 3, Status: domain.TarefaEmAndamento},
	}

	updated, err := uc.ChangeStatus(context.Background(), tarefas, 2, domain.TarefaConcluida)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, repo.patchCalls)

	require.Len(t, updated, 3)
	assert.Equal(t, int64(3), updated[0].ID)
	assert.Equal(t, domain.TarefaConcluida, updated[1].Status)
	assert.Equal(t, domain.TarefaConcluida, updated[2].Status)

	// the caller's slice is untouched
	assert.Equal(t, domain.TarefaPendente, tarefas[1].Status)
	assert.Equal(t, int64(1), tarefas[0].ID)
}

func TestChangeStatusFailureLeavesListUntouched(t *testing.T) {
	repo := &fakeTarefaRepo{patchErr: domain.ErrTarefaNotFound}
	uc := New(repo, nil)

	tarefas := []domain.Tarefa{
		{ID: 1, Status: domain.TarefaPendente},
		{ID: 2, Status: domain.TarefaEmAndamento},
	}

	updated, err := uc.ChangeStatus(context.Background(), tarefas, 1, domain.TarefaConcluida)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	require.Len(t, updated, 2)
	assert.Equal(t, domain.TarefaPendente, updated[0].Status)
	assert.Equal(t, int64(1), updated[0].ID)
}

func TestDeleteReconcilesList(t *testing.T) {
	repo := &fakeTarefaRepo{}
	uc := New(repo, nil)

	tarefas := []domain.Tarefa{{ID: 1}, {ID: 2}, {ID: 3}}

	updated, err := uc.Delete(context.Background(), tarefas, 2)
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, int64(1), updated[0].ID)
	assert.Equal(t, int64(3), updated[1].ID)
}

func TestDeleteFailureLeavesListUntouched(t *testing.T) {
	repo := &fakeTarefaRepo{deleteErr: domain.ErrTarefaNotFound}
	uc := New(repo, nil)

	tarefas := []domain.Tarefa{{ID: 1}, {ID: 2}}

	updated, err := uc.Delete(context.Background(), tarefas, 1)
	require.Error(t, err)
	assert.Len(t, updated, 2)
}

func TestListByMateriaSortsByStatus(t *testing.T) {
	repo := &fakeTarefaRepo{tarefas: []domain.Tarefa{
		{ID: 1, MateriaID: 7, Status: domain.TarefaConcluida},
		{ID: 2, MateriaID: 7, Status: domain.TarefaPendente},
		{ID: 3, MateriaID: 8, Status: domain.TarefaPendente},
	}}
	uc := New(repo, nil)

	tarefas, err := uc.ListByMateria(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, tarefas, 2)
	assert.Equal(t, int64(2), tarefas[0].ID)
	assert.Equal(t, int64(1), tarefas[1].ID)
}

func TestCountAbertas(t *testing.T) {
	tarefas := []domain.Tarefa{
		{ID: 1, MateriaID: 7, Status: domain.TarefaPendente},
		{ID: 2, MateriaID: 7, Status: domain.TarefaEmAndamento},
		{ID: 3, MateriaID: 7, Status: domain.TarefaConcluida},
		{ID: 4, MateriaID: 8, Status: domain.TarefaPendente},
	}

	assert.Equal(t, 2, CountAbertas(tarefas, 7))
	assert.Equal(t, 1, CountAbertas(tarefas, 8))
	assert.Equal(t, 0, CountAbertas(tarefas, 9))
}
