package materia

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

type fakeMateriaRepo struct {
	materias  []domain.Materia
	listErr   error
	lastInput repository.MateriaInput
	lastID    int64
}

func (f *fakeMateriaRepo) List(ctx context.Context) ([]domain.Materia, error) {
	return f.materias, f.listErr
}

func (f *fakeMateriaRepo) GetByID(ctx context.Context, id int64) (*domain.Materia, error) {
	for i := range f.materias {
		if f.materias[i].ID == id {
			return &f.materias[i], nil
		}
	}
	return nil, domain.ErrMateriaNotFound
}

func (f *fakeMateriaRepo) Create(ctx context.Context, input repository.MateriaInput) (*domain.Materia, error) {
	f.lastInput = input
	return &domain.Materia{ID: 99, Titulo: input.Titulo, Status: input.Status}, nil
}

func (f *fakeMateriaRepo) Update(ctx context.Context, id int64, input repository.MateriaInput) (*domain.Materia, error) {
	f.lastID = id
	f.lastInput = input
	return &domain.Materia{ID: id, Titulo: input.Titulo, Status: input.Status}, nil
}

func (f *fakeMateriaRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeTarefaRepo struct {
	tarefas []domain.Tarefa
	listErr error
}

func (f *fakeTarefaRepo) List(ctx context.Context) ([]domain.Tarefa, error) {
	return f.tarefas, f.listErr
}

func (f *fakeTarefaRepo) ListByMateria(ctx context.Context, materiaID int64) ([]domain.Tarefa, error) {
	return nil, nil
}

func (f *fakeTarefaRepo) Create(ctx context.Context, input repository.TarefaInput) (*domain.Tarefa, error) {
	return nil, nil
}

func (f *fakeTarefaRepo) Update(ctx context.Context, id int64, input repository.TarefaInput) (*domain.Tarefa, error) {
	return nil, nil
}

func (f *fakeTarefaRepo) PatchStatus(ctx context.Context, id int64, status domain.TarefaStatus) error {
	return nil
}

func (f *fakeTarefaRepo) Delete(ctx context.Context, id int64) error { return nil }

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestSortActiveFirstThenMostRecent(t *testing.T) {
	materias := []domain.Materia{
		{ID: 1, Status: domain.MateriaFinalizada, CreatedAt: day(20)},
		{ID: 2, Status: domain.MateriaEmAndamento, CreatedAt: day(5)},
		{ID: 3, Status: domain.MateriaEmAndamento, CreatedAt: day(15)},
		{ID: 4, Status: domain.MateriaFinalizada, CreatedAt: day(1)},
	}

	Sort(materias)

	ids := []int64{materias[0].ID, materias[1].ID, materias[2].ID, materias[3].ID}
	assert.Equal(t, []int64{3, 2, 1, 4}, ids)
}

func TestSplit(t *testing.T) {
	materias := []domain.Materia{
		{ID: 1, Status: domain.MateriaEmAndamento},
		{ID: 2, Status: domain.MateriaFinalizada},
		{ID: 3, Status: domain.MateriaEmAndamento},
	}

	ativas, finalizadas := Split(materias)

	require.Len(t, ativas, 2)
	require.Len(t, finalizadas, 1)
	assert.Equal(t, int64(2), finalizadas[0].ID)
}

func TestOverviewFetchesBothAndSorts(t *testing.T) {
	materias := &fakeMateriaRepo{materias: []domain.Materia{
		{ID: 1, Status: domain.MateriaFinalizada, CreatedAt: day(10)},
		{ID: 2, Status: domain.MateriaEmAndamento, CreatedAt: day(1)},
	}}
	tarefas := &fakeTarefaRepo{tarefas: []domain.Tarefa{{ID: 7, MateriaID: 2}}}
	uc := New(materias, tarefas, nil)

	ms, ts, err := uc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, int64(2), ms[0].ID)
	require.Len(t, ts, 1)
	assert.Equal(t, int64(7), ts[0].ID)
}

func TestOverviewFailsWhenEitherFetchFails(t *testing.T) {
	uc := New(
		&fakeMateriaRepo{},
		&fakeTarefaRepo{listErr: domain.ErrNotConfigured},
		nil,
	)

	_, _, err := uc.Overview(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestSetStatusResuppliesFullRecord(t *testing.T) {
	raw := "2025-06-01T12:00:00Z"
	repo := &fakeMateriaRepo{}
	uc := New(repo, &fakeTarefaRepo{}, nil)

	m := &domain.Materia{
		ID:        4,
		Titulo:    "Cálculo",
		Descricao: "limites e derivadas",
		Tipo:      "exatas",
		Prazo:     &raw,
		Status:    domain.MateriaEmAndamento,
	}

	_, err := uc.SetStatus(context.Background(), m, domain.MateriaFinalizada)
	require.NoError(t, err)

	assert.Equal(t, int64(4), repo.lastID)
	assert.Equal(t, "Cálculo", repo.lastInput.Titulo)
	require.NotNil(t, repo.lastInput.Descricao)
	assert.Equal(t, "limites e derivadas", *repo.lastInput.Descricao)
	require.NotNil(t, repo.lastInput.Prazo)
	assert.Equal(t, raw, *repo.lastInput.Prazo)
	assert.Equal(t, domain.MateriaFinalizada, repo.lastInput.Status)
}

func TestSetStatusNilMateria(t *testing.T) {
	uc := New(&fakeMateriaRepo{}, &fakeTarefaRepo{}, nil)

	_, err := uc.SetStatus(context.Background(), nil, domain.MateriaFinalizada)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}
