package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gagyebu/internal/amqp"
	"gagyebu/internal/core"
	"gagyebu/internal/storage"
)

// ErrUserExists is returned by Register when the identifier is taken.
var ErrUserExists = errors.New("user already exists")

// EntryEventPublisher announces entry mutations to other processes.
// *amqp.Client satisfies it.
type EntryEventPublisher interface {
	PublishEntryEvent(ctx context.Context, msg *amqp.EntryEventMessage) error
}

// LedgerService orchestrates user and entry operations over a Store and
// publishes entry events when a publisher is configured.
type LedgerService struct {
	store     storage.Store
	publisher EntryEventPublisher

	locksMu sync.Mutex
	locks   map[string]*userLock
}

// userLock is dropped from the map once no writer holds or waits on it.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewLedgerService creates a service. publisher may be nil.
func NewLedgerService(store storage.Store, publisher EntryEventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
		locks:     make(map[string]*userLock),
	}
}

// lockUser serializes writes for userID. The returned func releases it.
func (s *LedgerService) lockUser(userID string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.locksMu.Unlock()
	}
}

// Register persists a new user exactly as given. It reports false with
// ErrUserExists when id is already registered.
func (s *LedgerService) Register(ctx context.Context, id, secret string) (bool, error) {
	u := core.User{ID: id, Secret: secret}
	if err := u.Validate(); err != nil {
		return false, err
	}

	err := s.store.CreateUser(ctx, u)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return false, ErrUserExists
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to register user", "user_id", id, "error", err)
		return false, fmt.Errorf("register user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "user_id", id)
	return true, nil
}

// Authenticate reports whether id exists and its secret matches exactly.
// Unknown users and wrong secrets both yield false with a nil error.
func (s *LedgerService) Authenticate(ctx context.Context, id, secret string) (bool, error) {
	u, err := s.store.FindUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to look up user", "user_id", id, "error", err)
		return false, fmt.Errorf("authenticate: %w", err)
	}
	return u.Secret == secret, nil
}

// UserExists reports whether id is registered.
func (s *LedgerService) UserExists(ctx context.Context, id string) (bool, error) {
	_, err := s.store.FindUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	return true, nil
}

// CreateEntry validates e and persists it, returning it with ID populated.
// Invalid entries never reach the store.
func (s *LedgerService) CreateEntry(ctx context.Context, e core.Entry) (core.Entry, error) {
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}

	unlock := s.lockUser(e.UserID)
	saved, err := s.store.CreateEntry(ctx, e)
	unlock()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save entry",
			"user_id", e.UserID,
			"date", e.Date.String(),
			"kind", e.Kind,
			"error", err)
		return core.Entry{}, fmt.Errorf("save entry: %w", err)
	}

	slog.InfoContext(ctx, "Entry created",
		"id", saved.ID,
		"user_id", saved.UserID,
		"kind", saved.Kind,
		"category", saved.Category,
		"amount", saved.Amount)

	s.publish(ctx, amqp.NewEntryCreatedMessage(saved.ID, saved.UserID))
	return saved, nil
}

// DeleteEntry removes the entry with id. It reports false, nil when no such
// entry exists.
func (s *LedgerService) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	return s.deleteEntry(ctx, id, "")
}

// DeleteUserEntry removes the entry only if it belongs to userID. Entries of
// other users are reported as missing.
func (s *LedgerService) DeleteUserEntry(ctx context.Context, userID string, id int64) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.deleteEntry(ctx, id, userID)
}

func (s *LedgerService) deleteEntry(ctx context.Context, id int64, owner string) (bool, error) {
	e, err := s.store.GetEntry(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load entry for delete", "id", id, "error", err)
		return false, fmt.Errorf("load entry: %w", err)
	}
	if owner != "" && e.UserID != owner {
		return false, nil
	}

	unlock := s.lockUser(e.UserID)
	removed, err := s.store.DeleteEntry(ctx, id)
	unlock()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to delete entry", "id", id, "error", err)
		return false, fmt.Errorf("delete entry: %w", err)
	}
	if !removed {
		return false, nil
	}

	slog.InfoContext(ctx, "Entry deleted", "id", id, "user_id", e.UserID)
	s.publish(ctx, amqp.NewEntryDeletedMessage(id, e.UserID))
	return true, nil
}

// GetEntry returns storage.ErrNotFound for unknown ids.
func (s *LedgerService) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	return s.store.GetEntry(ctx, id)
}

// FindByUserAndDate lists the user's entries on date in ascending id order.
func (s *LedgerService) FindByUserAndDate(ctx context.Context, userID string, date core.Date) ([]core.Entry, error) {
	entries, err := s.store.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list entries", "user_id", userID, "date", date.String(), "error", err)
		return nil, fmt.Errorf("find entries: %w", err)
	}
	return entries, nil
}

// publish never fails the caller; the mutation is already persisted.
func (s *LedgerService) publish(ctx context.Context, msg *amqp.EntryEventMessage) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No event publisher configured, skipping entry event", "type", msg.Type)
		return
	}
	if err := s.publisher.PublishEntryEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry event",
			"type", msg.Type,
			"id", msg.EntryID,
			"error", err)
	}
}
