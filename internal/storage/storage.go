// Package storage provides the local DB abstraction behind the journeys API.
package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Erhabor-Fona/using-retriofit/internal/domain"
)

// Store persists the user directory and accepted journey bookings.
type Store interface {
	Close() error
	AddUser(name, email string) (domain.User, error)
	ListUsers() ([]domain.User, error)
	SaveBooking(b domain.Booking) error
	GetBooking(ref string) (domain.Booking, bool, error)
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "memory":
		return newMemoryStore(), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// memoryStore keeps everything in process memory. Useful for tests and for
// running the API without a data directory.
type memoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[int64]domain.User
	bookings map[string]domain.Booking
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[int64]domain.User),
		bookings: make(map[string]domain.Booking),
	}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) AddUser(name, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	user := domain.User{ID: m.nextID, Name: name, Email: email}
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) SaveBooking(b domain.Booking) error {
	if strings.TrimSpace(b.Ref) == "" {
		return fmt.Errorf("booking ref is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.Ref] = b
	return nil
}

func (m *memoryStore) GetBooking(ref string) (domain.Booking, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[ref]
	return b, ok, nil
}
