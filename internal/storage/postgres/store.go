package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"gagyebu/internal/core"
	"gagyebu/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for users and entries.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to databaseURL and ensures the schema exists.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// EnsureSchema creates the tables if they are missing. Safe on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			secret TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			date DATE NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
			category TEXT NOT NULL,
			amount BIGINT NOT NULL CHECK (amount > 0),
			memo TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user_date ON entries (user_id, date);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, u core.User) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, secret) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		u.ID, u.Secret)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrAlreadyExists
	}
	return nil
}

// FindUser fetches a user by identifier.
func (s *Store) FindUser(ctx context.Context, id string) (core.User, error) {
	var u core.User
	err := s.pool.QueryRow(ctx, `SELECT id, secret FROM users WHERE id = $1`, id).Scan(&u.ID, &u.Secret)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.User{}, storage.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// CreateEntry inserts an entry and returns it with the generated id.
func (s *Store) CreateEntry(ctx context.Context, e core.Entry) (core.Entry, error) {
	var memo *string
	if e.Memo != "" {
		memo = &e.Memo
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO entries (user_id, date, kind, category, amount, memo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		e.UserID, e.Date.Time, string(e.Kind), string(e.Category), e.Amount, memo).Scan(&e.ID)
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	return e, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	row := s.pool.QueryRow(ctx, selectEntries+` WHERE id = $1`, id)
	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Entry{}, storage.ErrNotFound
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (s *Store) FindByUserAndDate(ctx context.Context, userID string, date core.Date) ([]core.Entry, error) {
	return s.queryEntries(ctx, selectEntries+` WHERE user_id = $1 AND date = $2 ORDER BY id`, userID, date.Time)
}

func (s *Store) FindByUserBetween(ctx context.Context, userID string, from, to core.Date) ([]core.Entry, error) {
	return s.queryEntries(ctx, selectEntries+` WHERE user_id = $1 AND date BETWEEN $2 AND $3 ORDER BY id`,
		userID, from.Time, to.Time)
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]core.Entry, error) {
	return s.queryEntries(ctx, selectEntries+` WHERE user_id = $1 ORDER BY id`, userID)
}

const selectEntries = `SELECT id, user_id, date, kind, category, amount, memo FROM entries`

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]core.Entry, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []core.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func scanEntry(row pgx.Row) (core.Entry, error) {
	var (
		e        core.Entry
		date     time.Time
		kind     string
		category string
		memo     pgtype.Text
	)
	if err := row.Scan(&e.ID, &e.UserID, &date, &kind, &category, &e.Amount, &memo); err != nil {
		return core.Entry{}, err
	}
	e.Date = core.DateOf(date)
	e.Kind = core.Kind(kind)
	e.Category = core.Category(category)
	e.Memo = memo.String
	return e, nil
}
