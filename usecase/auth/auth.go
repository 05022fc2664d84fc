// Package auth owns the process-wide session state. It is the only
// component that talks to the identity provider and the local session store;
// everything else receives the session through an explicit handle, never
// through ambient lookup.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

// IdentityClient is the consumed identity interface.
type IdentityClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	UpdateUser(ctx context.Context, accessToken string, update domain.ProfileUpdate) (*domain.User, error)
}

// Listener receives the new session on every change, including the initial
// load. A nil session means signed out.
type Listener func(session *domain.Session)

// Manager holds the current session, persists it locally and notifies
// subscribers on every auth-state change.
type Manager struct {
	identity IdentityClient
	store    repository.SessionStore
	logger   *zap.Logger

	mu      sync.RWMutex
	session *domain.Session
	loading bool

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int
}

// NewManager builds a session manager. The store may be nil, in which case
// sessions simply do not survive restarts.
func NewManager(identity IdentityClient, store repository.SessionStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		identity: identity,
		store:    store,
		logger:   logger,
		loading:  true,
		subs:     make(map[int]Listener),
	}
}

// Start loads the persisted session, refreshing it when the access token has
// expired. Failures degrade to signed-out; they are never fatal. Listeners
// are notified exactly once with the resulting state.
func (m *Manager) Start(ctx context.Context) {
	session := m.restore(ctx)

	m.mu.Lock()
	m.session = session
	m.loading = false
	m.mu.Unlock()

	m.notify(session)
}

func (m *Manager) restore(ctx context.Context) *domain.Session {
	if m.store == nil {
		return nil
	}
	session, err := m.store.Load(ctx)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			m.logger.Warn("failed to load stored session", zap.Error(err))
		}
		return nil
	}

	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = tokenExpiry(session.AccessToken)
	}
	if !session.IsExpired(time.Now()) {
		return session
	}

	refreshed, err := m.identity.Refresh(ctx, session.RefreshToken)
	if err != nil {
		m.logger.Info("stored session expired and refresh failed", zap.Error(err))
		_ = m.store.Clear(ctx)
		return nil
	}
	if err := m.store.Save(ctx, refreshed); err != nil {
		m.logger.Warn("failed to persist refreshed session", zap.Error(err))
	}
	return refreshed
}

// Subscribe registers a listener and returns its unsubscribe function. The
// listener is not called synchronously with the current state; callers read
// CurrentSession first, then subscribe.
func (m *Manager) Subscribe(listener Listener) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = listener
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

// CurrentSession returns the active session or nil when signed out.
func (m *Manager) CurrentSession() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// CurrentUser returns the authenticated user or nil when signed out.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	return m.session.User
}

// Loading reports whether the initial session fetch has not finished yet.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// AccessToken implements the gateway's token source. An expired session is
// refreshed in place first; when refresh fails the empty string is returned
// and the request goes out unauthenticated.
func (m *Manager) AccessToken(ctx context.Context) string {
	m.mu.RLock()
	session := m.session
	m.mu.RUnlock()

	if session == nil {
		return ""
	}
	if !session.IsExpired(time.Now()) {
		return session.AccessToken
	}

	refreshed, err := m.identity.Refresh(ctx, session.RefreshToken)
	if err != nil {
		m.logger.Warn("session refresh failed", zap.Error(err))
		return ""
	}
	m.setSession(ctx, refreshed)
	return refreshed.AccessToken
}

// SignIn exchanges credentials with the identity provider and activates the
// resulting session.
func (m *Manager) SignIn(ctx context.Context, email, senha string) error {
	session, err := m.identity.SignInWithPassword(ctx, email, senha)
	if err != nil {
		return err
	}
	m.setSession(ctx, session)
	return nil
}

// SignOut revokes the session remotely (best effort) and clears it locally.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.RLock()
	session := m.session
	m.mu.RUnlock()

	if session != nil {
		if err := m.identity.SignOut(ctx, session.AccessToken); err != nil {
			m.logger.Warn("remote sign-out failed", zap.Error(err))
		}
	}
	m.setSession(ctx, nil)
	return nil
}

// UpdateUser pushes a profile or password update to the identity provider
// and folds the updated user back into the current session.
func (m *Manager) UpdateUser(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	m.mu.RLock()
	session := m.session
	m.mu.RUnlock()

	if session == nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := m.identity.UpdateUser(ctx, session.AccessToken, update)
	if err != nil {
		return nil, err
	}

	updated := *session
	updated.User = user
	m.setSession(ctx, &updated)
	return user, nil
}

func (m *Manager) setSession(ctx context.Context, session *domain.Session) {
	m.mu.Lock()
	m.session = session
	m.loading = false
	m.mu.Unlock()

	if m.store != nil {
		var err error
		if session == nil {
			err = m.store.Clear(ctx)
		} else {
			err = m.store.Save(ctx, session)
		}
		if err != nil {
			m.logger.Warn("failed to persist session state", zap.Error(err))
		}
	}

	m.notify(session)
}

func (m *Manager) notify(session *domain.Session) {
	m.subMu.Lock()
	listeners := make([]Listener, 0, len(m.subs))
	for _, l := range m.subs {
		listeners = append(listeners, l)
	}
	m.subMu.Unlock()

	for _, l := range listeners {
		l(session)
	}
}

// tokenExpiry reads the exp claim of a JWT access token without verifying
// its signature; verification is the backend's job, the client only needs
// the expiry instant for refresh scheduling.
func tokenExpiry(accessToken string) time.Time {
	if accessToken == "" {
		return time.Time{}
	}
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
