package storage

import (
	"context"
	"errors"

	"gagyebu/internal/core"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore persists users keyed by identifier.
type UserStore interface {
	CreateUser(ctx context.Context, u core.User) error
	FindUser(ctx context.Context, id string) (core.User, error)
}

// EntryStore owns the ledger entries. Every listing is ordered by ascending id.
type EntryStore interface {
	CreateEntry(ctx context.Context, e core.Entry) (core.Entry, error)
	// DeleteEntry reports false when no entry has the id.
	DeleteEntry(ctx context.Context, id int64) (bool, error)
	GetEntry(ctx context.Context, id int64) (core.Entry, error)
	FindByUserAndDate(ctx context.Context, userID string, date core.Date) ([]core.Entry, error)
	// FindByUserBetween returns entries dated within [from, to].
	FindByUserBetween(ctx context.Context, userID string, from, to core.Date) ([]core.Entry, error)
	ListByUser(ctx context.Context, userID string) ([]core.Entry, error)
}

// Store is a complete ledger backend.
type Store interface {
	UserStore
	EntryStore
	// EnsureSchema creates the users and entries structures if absent.
	EnsureSchema(ctx context.Context) error
	Close() error
}
