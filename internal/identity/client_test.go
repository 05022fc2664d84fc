package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organizae/app/domain"
)

type providerCall struct {
	method string
	url    string
	apikey string
	auth   string
	body   []byte
}

func newProvider(t *testing.T, status int, response interface{}) (*Client, *providerCall) {
	t.Helper()
	call := &providerCall{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call.method = r.Method
		call.url = r.URL.String()
		call.apikey = r.Header.Get("apikey")
		call.auth = r.Header.Get("Authorization")
		call.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(server.Close)

	return New(server.URL, "anon-key", 2*time.Second, nil), call
}

func TestSignInWithPassword(t *testing.T) {
	client, call := newProvider(t, http.StatusOK, map[string]interface{}{
		"access_token":  "access",
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": "refresh",
		"user": map[string]interface{}{
			"id":            "u1",
			"email":         "ana@exemplo.com",
			"user_metadata": map[string]string{"nome_completo": "Ana"},
		},
	})

	session, err := client.SignInWithPassword(context.Background(), "ana@exemplo.com", "Senha1!")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/auth/v1/token?grant_type=password", call.url)
	assert.Equal(t, "anon-key", call.apikey)
	assert.Equal(t, "Bearer anon-key", call.auth)
	assert.JSONEq(t, `{"email":"ana@exemplo.com","password":"Senha1!"}`, string(call.body))

	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, "refresh", session.RefreshToken)
	assert.False(t, session.ExpiresAt.IsZero())
	require.NotNil(t, session.User)
	assert.Equal(t, "Ana", session.User.NomeCompleto())
}

func TestRefresh(t *testing.T) {
	client, call := newProvider(t, http.StatusOK, map[string]interface{}{
		"access_token":  "access2",
		"refresh_token": "refresh2",
		"expires_in":    3600,
	})

	session, err := client.Refresh(context.Background(), "refresh")
	require.NoError(t, err)

	assert.Equal(t, "/auth/v1/token?grant_type=refresh_token", call.url)
	assert.JSONEq(t, `{"refresh_token":"refresh"}`, string(call.body))
	assert.Equal(t, "access2", session.AccessToken)
}

func TestSignOutUsesSessionToken(t *testing.T) {
	client, call := newProvider(t, http.StatusNoContent, nil)

	require.NoError(t, client.SignOut(context.Background(), "session-token"))

	assert.Equal(t, "/auth/v1/logout", call.url)
	assert.Equal(t, "Bearer session-token", call.auth)
}

func TestUpdateUser(t *testing.T) {
	client, call := newProvider(t, http.StatusOK, map[string]interface{}{
		"id":            "u1",
		"user_metadata": map[string]string{"nome_completo": "Ana Souza"},
	})

	user, err := client.UpdateUser(context.Background(), "session-token", domain.ProfileUpdate{
		Data: map[string]string{"nome_completo": "Ana Souza"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/auth/v1/user", call.url)
	assert.Equal(t, "Bearer session-token", call.auth)
	assert.JSONEq(t, `{"data":{"nome_completo":"Ana Souza"}}`, string(call.body))
	assert.Equal(t, "Ana Souza", user.NomeCompleto())
}

func TestAuthErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		response interface{}
		code     domain.ErrorCode
		message  string
	}{
		{
			name:     "error_description wins",
			status:   http.StatusBadRequest,
			response: map[string]string{"error_description": "Invalid login credentials", "msg": "outro"},
			code:     domain.ErrCodeInvalid,
			message:  "Invalid login credentials",
		},
		{
			name:     "msg envelope",
			status:   http.StatusUnprocessableEntity,
			response: map[string]string{"msg": "Password should be at least 7 characters"},
			code:     domain.ErrCodeInvalid,
			message:  "Password should be at least 7 characters",
		},
		{
			name:    "empty body falls back",
			status:  http.StatusUnauthorized,
			code:    domain.ErrCodeUnauthorized,
			message: "não autorizado",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newProvider(t, tc.status, tc.response)

			_, err := client.SignInWithPassword(context.Background(), "a@b.c", "x")
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, tc.code))
			assert.Equal(t, tc.message, domain.UserMessage(err, ""))
		})
	}
}

func TestUnconfiguredProvider(t *testing.T) {
	client := New("", "", time.Second, nil)

	_, err := client.SignInWithPassword(context.Background(), "a@b.c", "x")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
