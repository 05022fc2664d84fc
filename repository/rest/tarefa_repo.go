package rest

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

type tarefaRepository struct {
	client *Client
}

// NewTarefaRepository returns a gateway-backed implementation of TarefaRepository.
func NewTarefaRepository(client *Client) repository.TarefaRepository {
	return &tarefaRepository{client: client}
}

func (r *tarefaRepository) List(ctx context.Context) ([]domain.Tarefa, error) {
	var tarefas []domain.Tarefa
	if err := r.client.do(ctx, fasthttp.MethodGet, "/tarefas", nil, &tarefas); err != nil {
		return nil, err
	}
	return tarefas, nil
}

func (r *tarefaRepository) ListByMateria(ctx context.Context, materiaID int64) ([]domain.Tarefa, error) {
	var tarefas []domain.Tarefa
	path := fmt.Sprintf("/tarefas/materia/%d", materiaID)
	if err := r.client.do(ctx, fasthttp.MethodGet, path, nil, &tarefas); err != nil {
		return nil, err
	}
	return tarefas, nil
}

func (r *tarefaRepository) Create(ctx context.Context, input repository.TarefaInput) (*domain.Tarefa, error) {
	var tarefa domain.Tarefa
	if err := r.client.do(ctx, fasthttp.MethodPost, "/tarefas", input, &tarefa); err != nil {
		return nil, err
	}
	return &tarefa, nil
}

func (r *tarefaRepository) Update(ctx context.Context, id int64, input repository.TarefaInput) (*domain.Tarefa, error) {
	var tarefa domain.Tarefa
	err := r.client.do(ctx, fasthttp.MethodPut, fmt.Sprintf("/tarefas/%d", id), input, &tarefa)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrTarefaNotFound
		}
		return nil, err
	}
	return &tarefa, nil
}

func (r *tarefaRepository) PatchStatus(ctx context.Context, id int64, status domain.TarefaStatus) error {
	payload := struct {
		Status domain.TarefaStatus `json:"status"`
	}{Status: status}
	err := r.client.do(ctx, fasthttp.MethodPatch, fmt.Sprintf("/tarefas/%d/status", id), payload, nil)
	if domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return domain.ErrTarefaNotFound
	}
	return err
}

func (r *tarefaRepository) Delete(ctx context.Context, id int64) error {
	err := r.client.do(ctx, fasthttp.MethodDelete, fmt.Sprintf("/tarefas/%d", id), nil, nil)
	if domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return domain.ErrTarefaNotFound
	}
	return err
}
