package apikeys

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"
)

const keyPrefix = "rl_"

var keysBucket = []byte("api_keys")

// keyRecord is the stored form of an API key: the public projection plus the
// bcrypt hash of the secret half. Only the projection ever leaves the store.
type keyRecord struct {
	Key
	SecretHash []byte `json:"secretHash"`
}

// BoltStore is a bbolt-backed credential store. Keys have the form
// "rl_<id>.<secret>"; the id half locates the record, the secret half is
// compared against its bcrypt hash.
type BoltStore struct {
	db *bolt.DB
}

var _ Repo = (*BoltStore)(nil)

// OpenBoltStore opens (or creates) the key database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("[apikeys OpenBoltStore] open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(keysBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("[apikeys OpenBoltStore] create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Create stores a new API key and returns the plaintext key exactly once.
// The plaintext is never recoverable afterwards.
func (s *BoltStore) Create(ctx context.Context, name, userID string, expiresAt *time.Time, metadata map[string]any) (string, *Key, error) {
	id := uuid.NewString()

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", nil, fmt.Errorf("[apikeys Create] generate secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(secretBytes)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("[apikeys Create] hash secret: %w", err)
	}

	record := keyRecord{
		Key: Key{
			ID:        id,
			Name:      name,
			UserID:    userID,
			Enabled:   true,
			ExpiresAt: expiresAt,
			Metadata:  metadata,
		},
		SecretHash: hash,
	}

	if err := s.putRecord(ctx, &record); err != nil {
		return "", nil, err
	}

	projection := record.Key
	return keyPrefix + id + "." + secret, &projection, nil
}

// Verify implements Repo.
func (s *BoltStore) Verify(ctx context.Context, rawKey string) (*Key, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, secret, ok := splitKey(rawKey)
	if !ok {
		return nil, ErrKeyInvalid
	}

	record, err := s.getRecord(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrKeyInvalid
	}

	if err := bcrypt.CompareHashAndPassword(record.SecretHash, []byte(secret)); err != nil {
		return nil, ErrKeyInvalid
	}
	if !record.Enabled {
		return nil, ErrKeyDisabled
	}
	if record.ExpiresAt != nil && record.ExpiresAt.Before(time.Now()) {
		return nil, ErrKeyExpired
	}

	projection := record.Key
	return &projection, nil
}

// SetEnabled flips a key's enabled flag (admin/seed tooling only).
func (s *BoltStore) SetEnabled(ctx context.Context, id string, enabled bool) error {
	record, err := s.getRecord(id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrKeyInvalid
	}
	record.Enabled = enabled
	return s.putRecord(ctx, record)
}

func (s *BoltStore) putRecord(ctx context.Context, record *keyRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("[apikeys] marshal key %s: %w", record.ID, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(keysBucket).Put([]byte(record.ID), data)
	})
	if err != nil {
		return fmt.Errorf("[apikeys] store key %s: %w", record.ID, err)
	}
	return nil
}

func (s *BoltStore) getRecord(id string) (*keyRecord, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(keysBucket).Get([]byte(id)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("[apikeys] read key %s: %w", id, err)
	}
	if data == nil {
		return nil, nil
	}
	var record keyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("[apikeys] decode key %s: %w", id, err)
	}
	return &record, nil
}

// splitKey parses "rl_<id>.<secret>" into its halves.
func splitKey(rawKey string) (id, secret string, ok bool) {
	rest, found := strings.CutPrefix(rawKey, keyPrefix)
	if !found {
		return "", "", false
	}
	id, secret, found = strings.Cut(rest, ".")
	if !found || id == "" || secret == "" {
		return "", "", false
	}
	return id, secret, true
}
