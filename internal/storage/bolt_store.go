package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"

	"github.com/Erhabor-Fona/using-retriofit/internal/domain"
)

const (
	userBucket    = "users"
	bookingBucket = "bookings"
	userKeyBytes  = 8
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// boltStore implements a Store backed by BoltDB.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{userBucket, bookingBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// AddUser appends a user to the directory with the next sequential id.
func (b *boltStore) AddUser(name, email string) (domain.User, error) {
	var user domain.User
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(userBucket))
		if bucket == nil {
			return fmt.Errorf("user bucket missing")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("next user id: %w", err)
		}
		user = domain.User{ID: int64(seq), Name: name, Email: email}

		value, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		return bucket.Put(userKey(user.ID), value)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ListUsers returns the directory in insertion order.
func (b *boltStore) ListUsers() ([]domain.User, error) {
	var out []domain.User
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(userBucket))
		if bucket == nil {
			return fmt.Errorf("user bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var user domain.User
			if err := json.Unmarshal(v, &user); err != nil {
				return fmt.Errorf("decode user %x: %w", k, err)
			}
			out = append(out, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveBooking persists an accepted booking under its reference.
func (b *boltStore) SaveBooking(booking domain.Booking) error {
	if strings.TrimSpace(booking.Ref) == "" {
		return fmt.Errorf("booking ref is empty")
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bookingBucket))
		if bucket == nil {
			return fmt.Errorf("booking bucket missing")
		}

		value, err := json.Marshal(booking)
		if err != nil {
			return fmt.Errorf("encode booking: %w", err)
		}
		return bucket.Put([]byte(booking.Ref), value)
	})
}

// GetBooking looks a booking up by its reference.
func (b *boltStore) GetBooking(ref string) (domain.Booking, bool, error) {
	var (
		booking domain.Booking
		found   bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bookingBucket))
		if bucket == nil {
			return fmt.Errorf("booking bucket missing")
		}

		value := bucket.Get([]byte(ref))
		if value == nil {
			return nil
		}
		if err := json.Unmarshal(value, &booking); err != nil {
			return fmt.Errorf("decode booking %q: %w", ref, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return domain.Booking{}, false, err
	}
	return booking, found, nil
}

// userKey encodes a user id as a big-endian key so cursor order matches
// insertion order.
func userKey(id int64) []byte {
	buf := make([]byte, userKeyBytes)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}
