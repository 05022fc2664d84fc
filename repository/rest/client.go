package rest

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

// TokenSource supplies the bearer token for outbound requests. An empty
// string means no session is active and the request goes out unauthenticated.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

// Client issues JSON requests against the remote data gateway. It owns no
// entity state; the gateway is the source of truth.
type Client struct {
	baseURL string
	httpc   *fasthttp.Client
	tokens  TokenSource
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient builds a gateway client. An empty baseURL leaves the client in
// degraded mode: every call fails with domain.ErrNotConfigured.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &fasthttp.Client{Name: "organizae"},
		tokens:  tokens,
		timeout: timeout,
		logger:  logger,
	}
}

// errorEnvelope matches the backend's error payload shape.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do performs one request/response cycle. A nil out discards the body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if c.baseURL == "" {
		return domain.ErrNotConfigured
	}

	reqID := uuid.NewString()
	ctx = appLogger.ContextWithRequestID(ctx, reqID)
	log := appLogger.WithRequestID(ctx, c.logger)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-Request-ID", reqID)
	if token := c.tokens.AccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

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
		log.Warn("gateway request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return domain.WrapError(domain.ErrCodeUnavailable, "falha de conexão com o servidor", err)
	}

	status := resp.StatusCode()
	if status >= 400 {
		return remoteError(status, resp.Body())
	}

	log.Debug("gateway request ok",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status))

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "resposta inválida do servidor", err)
	}
	return nil
}

// remoteError maps an HTTP failure onto the domain taxonomy, preferring the
// server-supplied message over the generic fallback.
func remoteError(status int, body []byte) error {
	message := ""
	var envelope errorEnvelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &envelope); err == nil {
			message = envelope.Error
		}
	}

	code := domain.ErrCodeInternal
	fallback := "erro no servidor"
	switch {
	case status == fasthttp.StatusUnauthorized:
		code = domain.ErrCodeUnauthorized
		fallback = "não autorizado"
	case status == fasthttp.StatusForbidden:
		code = domain.ErrCodeForbidden
		fallback = "acesso negado"
	case status == fasthttp.StatusNotFound:
		code = domain.ErrCodeNotFound
		fallback = "registro não encontrado"
	case status == fasthttp.StatusConflict:
		code = domain.ErrCodeConflict
		fallback = "conflito ao salvar"
	case status >= 400 && status < 500:
		code = domain.ErrCodeInvalid
		fallback = "dados inválidos"
	}

	if message == "" {
		message = fallback
	}
	return domain.WrapError(code, message, fmt.Errorf("status %d", status))
}
