package sessionstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/organizae/app/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	session := &domain.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "bearer",
		ExpiresAt:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		User:         &domain.User{ID: "u1", Email: "a@b.c", Metadata: map[string]string{"nome_completo": "Ana"}},
	}

	require.NoError(t, store.Save(context.Background(), session))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, session.ExpiresAt.Equal(loaded.ExpiresAt))
	require.NotNil(t, loaded.User)
	assert.Equal(t, "Ana", loaded.User.NomeCompleto())
}

func TestLoadWithoutSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), &domain.Session{AccessToken: "tok"}))
	require.NoError(t, store.Clear(context.Background()))

	_, err := store.Load(context.Background())
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	// clearing an empty store is fine
	require.NoError(t, store.Clear(context.Background()))
}

func TestSaveNilSession(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidPayload)
}

func TestCorruptRecordReadsAsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(currentKey, []byte("{not json"))
	}))

	_, err = store.Load(context.Background())
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
