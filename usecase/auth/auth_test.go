package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organizae/app/domain"
)

type fakeIdentity struct {
	signInSession  *domain.Session
	signInErr      error
	refreshSession *domain.Session
	refreshErr     error
	refreshCalls   int
	signOutCalls   int
	updatedUser    *domain.User
	updateErr      error
	lastUpdate     domain.ProfileUpdate
}

func (f *fakeIdentity) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	return f.signInSession, f.signInErr
}

func (f *fakeIdentity) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	f.refreshCalls++
	return f.refreshSession, f.refreshErr
}

func (f *fakeIdentity) SignOut(ctx context.Context, accessToken string) error {
	f.signOutCalls++
	return nil
}

func (f *fakeIdentity) UpdateUser(ctx context.Context, accessToken string, update domain.ProfileUpdate) (*domain.User, error) {
	f.lastUpdate = update
	return f.updatedUser, f.updateErr
}

type fakeStore struct {
	session    *domain.Session
	saveCalls  int
	clearCalls int
}

func (f *fakeStore) Load(ctx context.Context) (*domain.Session, error) {
	if f.session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeStore) Save(ctx context.Context, session *domain.Session) error {
	f.saveCalls++
	f.session = session
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.clearCalls++
	f.session = nil
	return nil
}

func liveSession(user *domain.User) *domain.Session {
	return &domain.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         user,
	}
}

func TestStartRestoresStoredSession(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "a@b.c"}
	store := &fakeStore{session: liveSession(user)}
	m := NewManager(&fakeIdentity{}, store, nil)

	var notified []*domain.Session
	m.Subscribe(func(s *domain.Session) { notified = append(notified, s) })

	assert.True(t, m.Loading())
	m.Start(context.Background())

	assert.False(t, m.Loading())
	require.NotNil(t, m.CurrentSession())
	assert.Equal(t, "u1", m.CurrentUser().ID)
	require.Len(t, notified, 1)
	assert.NotNil(t, notified[0])
}

func TestStartWithoutStoredSession(t *testing.T) {
	m := NewManager(&fakeIdentity{}, &fakeStore{}, nil)

	var notified []*domain.Session
	m.Subscribe(func(s *domain.Session) { notified = append(notified, s) })

	m.Start(context.Background())

	assert.Nil(t, m.CurrentSession())
	assert.False(t, m.Loading())
	require.Len(t, notified, 1)
	assert.Nil(t, notified[0])
}

func TestStartRefreshesExpiredSession(t *testing.T) {
	expired := &domain.Session{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	refreshed := liveSession(&domain.User{ID: "u1"})
	identity := &fakeIdentity{refreshSession: refreshed}
	store := &fakeStore{session: expired}
	m := NewManager(identity, store, nil)

	m.Start(context.Background())

	require.NotNil(t, m.CurrentSession())
	assert.Equal(t, "access", m.CurrentSession().AccessToken)
	assert.Equal(t, 1, identity.refreshCalls)
	assert.Equal(t, 1, store.saveCalls)
}

func TestStartClearsWhenRefreshFails(t *testing.T) {
	expired := &domain.Session{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	identity := &fakeIdentity{refreshErr: domain.ErrUnauthorized}
	store := &fakeStore{session: expired}
	m := NewManager(identity, store, nil)

	m.Start(context.Background())

	assert.Nil(t, m.CurrentSession())
	assert.Equal(t, 1, store.clearCalls)
}

func TestSignInPersistsAndNotifies(t *testing.T) {
	session := liveSession(&domain.User{ID: "u1"})
	identity := &fakeIdentity{signInSession: session}
	store := &fakeStore{}
	m := NewManager(identity, store, nil)

	var notified []*domain.Session
	m.Subscribe(func(s *domain.Session) { notified = append(notified, s) })

	require.NoError(t, m.SignIn(context.Background(), "a@b.c", "Senha1!"))

	assert.Equal(t, session, m.CurrentSession())
	assert.Equal(t, 1, store.saveCalls)
	require.Len(t, notified, 1)
}

func TestSignInFailureKeepsSignedOut(t *testing.T) {
	identity := &fakeIdentity{signInErr: domain.ErrUnauthorized}
	m := NewManager(identity, &fakeStore{}, nil)

	err := m.SignIn(context.Background(), "a@b.c", "errada")
	require.Error(t, err)
	assert.Nil(t, m.CurrentSession())
}

func TestSignOutClearsEverywhere(t *testing.T) {
	identity := &fakeIdentity{}
	store := &fakeStore{}
	m := NewManager(identity, store, nil)
	m.setSession(context.Background(), liveSession(nil))

	require.NoError(t, m.SignOut(context.Background()))

	assert.Nil(t, m.CurrentSession())
	assert.Equal(t, 1, identity.signOutCalls)
	assert.Equal(t, 1, store.clearCalls)
}

func TestAccessTokenRefreshesInPlace(t *testing.T) {
	refreshed := liveSession(nil)
	identity := &fakeIdentity{refreshSession: refreshed}
	store := &fakeStore{}
	m := NewManager(identity, store, nil)
	m.setSession(context.Background(), &domain.Session{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(-time.Minute),
	})

	token := m.AccessToken(context.Background())

	assert.Equal(t, "access", token)
	assert.Equal(t, 1, identity.refreshCalls)
	assert.Equal(t, refreshed, m.CurrentSession())
}

func TestAccessTokenSignedOut(t *testing.T) {
	m := NewManager(&fakeIdentity{}, nil, nil)
	m.Start(context.Background())

	assert.Equal(t, "", m.AccessToken(context.Background()))
}

func TestUpdateUserFoldsIntoSession(t *testing.T) {
	updated := &domain.User{ID: "u1", Metadata: map[string]string{"nome_completo": "Ana"}}
	identity := &fakeIdentity{updatedUser: updated}
	m := NewManager(identity, &fakeStore{}, nil)
	m.setSession(context.Background(), liveSession(&domain.User{ID: "u1"}))

	user, err := m.UpdateUser(context.Background(), domain.ProfileUpdate{
		Data: map[string]string{"nome_completo": "Ana"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", user.NomeCompleto())
	assert.Equal(t, "Ana", m.CurrentUser().NomeCompleto())
	assert.Equal(t, "Ana", identity.lastUpdate.Data["nome_completo"])
}

func TestUpdateUserWhenSignedOut(t *testing.T) {
	m := NewManager(&fakeIdentity{}, nil, nil)
	m.Start(context.Background())

	_, err := m.UpdateUser(context.Background(), domain.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	m := NewManager(&fakeIdentity{signInSession: liveSession(nil)}, nil, nil)

	calls := 0
	unsubscribe := m.Subscribe(func(s *domain.Session) { calls++ })
	unsubscribe()

	require.NoError(t, m.SignIn(context.Background(), "a@b.c", "Senha1!"))
	assert.Equal(t, 0, calls)
}
