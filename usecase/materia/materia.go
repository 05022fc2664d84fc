package materia

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

type UseCase struct {
	materias repository.MateriaRepository
	tarefas  repository.TarefaRepository
	logger   *zap.Logger
}

func New(materias repository.MateriaRepository, tarefas repository.TarefaRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		materias: materias,
		tarefas:  tarefas,
		logger:   logger,
	}
}

// Overview fetches both collections as a joined pair; the dashboard renders
// only after both resolve. Materias come back already in display order.
func (uc *UseCase) Overview(ctx context.Context) ([]domain.Materia, []domain.Tarefa, error) {
	var (
		materias []domain.Materia
		tarefas  []domain.Tarefa
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		materias, err = uc.materias.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tarefas, err = uc.tarefas.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	Sort(materias)
	return materias, tarefas, nil
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Materia, error) {
	return uc.materias.GetByID(ctx, id)
}

func (uc *UseCase) Create(ctx context.Context, input repository.MateriaInput) (*domain.Materia, error) {
	return uc.materias.Create(ctx, input)
}

func (uc *UseCase) Update(ctx context.Context, id int64, input repository.MateriaInput) (*domain.Materia, error) {
	return uc.materias.Update(ctx, id, input)
}

// SetStatus flips a materia between active and finished. The full record is
// re-supplied because the gateway's update endpoint replaces fields.
func (uc *UseCase) SetStatus(ctx context.Context, m *domain.Materia, status domain.MateriaStatus) (*domain.Materia, error) {
	if m == nil {
		return nil, domain.ErrInvalidPayload
	}
	input := repository.MateriaInput{
		Titulo:    m.Titulo,
		Descricao: optional(m.Descricao),
		Tipo:      optional(m.Tipo),
		Prazo:     m.Prazo,
		Status:    status,
	}
	return uc.materias.Update(ctx, m.ID, input)
}

func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.materias.Delete(ctx, id)
}

// Sort orders materias for display: active before finished, then most
// recently created first. The sort is stable.
func Sort(materias []domain.Materia) {
	sort.SliceStable(materias, func(i, j int) bool {
		a, b := materias[i], materias[j]
		if a.Status != b.Status {
			return a.Status == domain.MateriaEmAndamento
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// Split partitions an already sorted materia list into the dashboard's
// active and finished sections.
func Split(materias []domain.Materia) (ativas, finalizadas []domain.Materia) {
	for _, m := range materias {
		if m.IsAtiva() {
			ativas = append(ativas, m)
		} else {
			finalizadas = append(finalizadas, m)
		}
	}
	return ativas, finalizadas
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
