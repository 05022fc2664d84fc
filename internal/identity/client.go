// Package identity speaks the identity provider's HTTP API. The provider
// owns authentication entirely; this client only exchanges credentials for
// sessions and pushes profile updates.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/organizae/app/domain"
	appLogger "github.com/organizae/app/pkg/logger"
)

// Client implements the consumed identity interface: sign in with email and
// password, sign out, refresh, and update the current user.
type Client struct {
	baseURL string
	anonKey string
	httpc   *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// New builds an identity client. Empty baseURL or anonKey leave it degraded:
// every call fails with domain.ErrNotConfigured.
func New(baseURL, anonKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		httpc:   &fasthttp.Client{Name: "organizae-identity"},
		timeout: timeout,
		logger:  logger,
	}
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

// SignInWithPassword exchanges email/password credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var token tokenResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/auth/v1/token?grant_type=password", "", payload, &token); err != nil {
		return nil, err
	}
	return c.session(token), nil
}

// Refresh exchanges a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	payload := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}

	var token tokenResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", payload, &token); err != nil {
		return nil, err
	}
	return c.session(token), nil
}

// SignOut revokes the session's tokens at the provider.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, fasthttp.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

// UpdateUser changes profile fields or the password of the current user.
func (c *Client) UpdateUser(ctx context.Context, accessToken string, update domain.ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, fasthttp.MethodPut, "/auth/v1/user", accessToken, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) session(token tokenResponse) *domain.Session {
	session := &domain.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		User:         token.User,
	}
	if token.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	return session
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body interface{}, out interface{}) error {
	if c.baseURL == "" || c.anonKey == "" {
		return domain.ErrNotConfigured
	}

	reqID := uuid.NewString()
	log := appLogger.WithRequestID(appLogger.ContextWithRequestID(ctx, reqID), c.logger)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("apikey", c.anonKey)
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "dados inválidos", err)
		}
		req.SetBody(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.httpc.DoDeadline(req, resp, deadline); err != nil {
		log.Warn("identity request failed", zap.String("path", path), zap.Error(err))
		return domain.WrapError(domain.ErrCodeUnavailable, "falha de conexão com o provedor de identidade", err)
	}

	status := resp.StatusCode()
	if status >= 400 {
		return authError(status, resp.Body())
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "resposta inválida do provedor de identidade", err)
	}
	return nil
}

// authError maps a provider failure onto the domain taxonomy. The provider
// uses several envelope shapes for error text; all are tried.
func authError(status int, body []byte) error {
	var envelope struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	message := ""
	if len(body) > 0 {
		if err := json.Unmarshal(body, &envelope); err == nil {
			switch {
			case envelope.ErrorDescription != "":
				message = envelope.ErrorDescription
			case envelope.Msg != "":
				message = envelope.Msg
			case envelope.Message != "":
				message = envelope.Message
			}
		}
	}

	code := domain.ErrCodeInternal
	fallback := "erro no provedor de identidade"
	switch {
	case status == fasthttp.StatusBadRequest || status == fasthttp.StatusUnprocessableEntity:
		code = domain.ErrCodeInvalid
		fallback = "credenciais inválidas"
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		code = domain.ErrCodeUnauthorized
		fallback = "não autorizado"
	}

	if message == "" {
		message = fallback
	}
	return domain.WrapError(code, message, fmt.Errorf("status %d", status))
}
