package rest

import (
	"context"

	"github.com/valyala/fasthttp"

	"github.com/organizae/app/repository"
)

type userRepository struct {
	client *Client
}

// NewUserRepository returns a gateway-backed implementation of UserRepository.
func NewUserRepository(client *Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Register(ctx context.Context, input repository.RegisterInput) error {
	return r.client.do(ctx, fasthttp.MethodPost, "/usuarios", input, nil)
}
