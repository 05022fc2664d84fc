// Package sessionstore persists the current session in a local BoltDB file
// so the user stays signed in between runs.
package sessionstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/repository"
)

var (
	bucketName = []byte("session")
	currentKey = []byte("current")
)

// Store is a bbolt-backed repository.SessionStore.
type Store struct {
	db *bolt.DB
}

var _ repository.SessionStore = (*Store)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Load returns the stored session or domain.ErrSessionNotFound.
func (s *Store) Load(_ context.Context) (*domain.Session, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var session *domain.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get(currentKey)
		if len(raw) == 0 {
			return domain.ErrSessionNotFound
		}
		var decoded domain.Session
		if err := json.Unmarshal(raw, &decoded); err != nil {
			// A corrupt record reads as no session rather than an error.
			return domain.ErrSessionNotFound
		}
		session = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Save replaces the stored session.
func (s *Store) Save(_ context.Context, session *domain.Session) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if session == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(currentKey, payload)
	})
}

// Clear removes the stored session.
func (s *Store) Clear(_ context.Context) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete(currentKey)
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
