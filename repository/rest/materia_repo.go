package rest

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

type materiaRepository struct {
	client *Client
}

// NewMateriaRepository returns a gateway-backed implementation of MateriaRepository.
func NewMateriaRepository(client *Client) repository.MateriaRepository {
	return &materiaRepository{client: client}
}

func (r *materiaRepository) List(ctx context.Context) ([]domain.Materia, error) {
	var materias []domain.Materia
	if err := r.client.do(ctx, fasthttp.MethodGet, "/materias", nil, &materias); err != nil {
		return nil, err
	}
	return materias, nil
}

func (r *materiaRepository) GetByID(ctx context.Context, id int64) (*domain.Materia, error) {
	var materia domain.Materia
	err := r.client.do(ctx, fasthttp.MethodGet, fmt.Sprintf("/materias/%d", id), nil, &materia)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrMateriaNotFound
		}
		return nil, err
	}
	return &materia, nil
}

func (r *materiaRepository) Create(ctx context.Context, input repository.MateriaInput) (*domain.Materia, error) {
	var materia domain.Materia
	if err := r.client.do(ctx, fasthttp.MethodPost, "/materias", input, &materia); err != nil {
		return nil, err
	}
	return &materia, nil
}

func (r *materiaRepository) Update(ctx context.Context, id int64, input repository.MateriaInput) (*domain.Materia, error) {
	var materia domain.Materia
	err := r.client.do(ctx, fasthttp.MethodPut, fmt.Sprintf("/materias/%d", id), input, &materia)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrMateriaNotFound
		}
		return nil, err
	}
	return &materia, nil
}

func (r *materiaRepository) Delete(ctx context.Context, id int64) error {
	err := r.client.do(ctx, fasthttp.MethodDelete, fmt.Sprintf("/materias/%d", id), nil, nil)
	if domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return domain.ErrMateriaNotFound
	}
	return err
}
