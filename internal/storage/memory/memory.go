package memory

import (
	"context"
	"sync"

	"gagyebu/internal/core"
	"gagyebu/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps users and entries in process memory. Entries are held in
// insertion order, which is also ascending id order.
type Store struct {
	mu      sync.RWMutex
	users   map[string]core.User
	entries []core.Entry
	nextID  int64
}

func New() *Store {
	return &Store{
		users:  make(map[string]core.User),
		nextID: 1,
	}
}

// EnsureSchema is a no-op; the structures exist from construction.
func (s *Store) EnsureSchema(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return storage.ErrAlreadyExists
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) FindUser(_ context.Context, id string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return core.User{}, storage.ErrNotFound
	}
	return u, nil
}

// CreateEntry assigns the next id; ids are never reused after deletion.
func (s *Store) CreateEntry(_ context.Context, e core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *Store) DeleteEntry(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetEntry(_ context.Context, id int64) (core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Entry{}, storage.ErrNotFound
}

func (s *Store) FindByUserAndDate(_ context.Context, userID string, date core.Date) ([]core.Entry, error) {
	return s.filter(func(e core.Entry) bool {
		return e.UserID == userID && e.Date.Equal(date.Time)
	}), nil
}

func (s *Store) FindByUserBetween(_ context.Context, userID string, from, to core.Date) ([]core.Entry, error) {
	return s.filter(func(e core.Entry) bool {
		return e.UserID == userID && !e.Date.Before(from.Time) && !e.Date.After(to.Time)
	}), nil
}

func (s *Store) ListByUser(_ context.Context, userID string) ([]core.Entry, error) {
	return s.filter(func(e core.Entry) bool { return e.UserID == userID }), nil
}

// filter returns a copy so callers cannot modify internal state.
func (s *Store) filter(keep func(core.Entry) bool) []core.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []core.Entry{}
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
