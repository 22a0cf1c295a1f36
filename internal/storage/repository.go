package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gagyebu/internal/core"

	_ "modernc.org/sqlite"
)

var _ Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db     *sql.DB
	dbPath string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{
		db:     db,
		dbPath: dbPath,
	}

	if err := repo.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// EnsureSchema implements Store
func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	version, err := RunMigrations(r.dbPath)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	slog.DebugContext(ctx, "SQLite schema is up to date", "db_path", r.dbPath, "version", version)
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser implements UserStore
func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, secret) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
		u.ID, u.Secret)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user rows affected: %w", err)
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// FindUser implements UserStore
func (r *SQLiteRepository) FindUser(ctx context.Context, id string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx, `SELECT id, secret FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Secret)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// CreateEntry implements EntryStore
func (r *SQLiteRepository) CreateEntry(ctx context.Context, e core.Entry) (core.Entry, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (user_id, date, kind, category, amount, memo) VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Date.String(), string(e.Kind), string(e.Category), e.Amount, nullString(e.Memo))
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry id: %w", err)
	}
	e.ID = id

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", e.ID,
		"user_id", e.UserID,
		"date", e.Date.String(),
		"kind", e.Kind,
		"amount", e.Amount)

	return e, nil
}

// DeleteEntry implements EntryStore
func (r *SQLiteRepository) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete entry rows affected: %w", err)
	}
	return n > 0, nil
}

// GetEntry implements EntryStore
func (r *SQLiteRepository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	row := r.db.QueryRowContext(ctx, selectEntries+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, ErrNotFound
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("get entry by id: %w", err)
	}
	return e, nil
}

// FindByUserAndDate implements EntryStore
func (r *SQLiteRepository) FindByUserAndDate(ctx context.Context, userID string, date core.Date) ([]core.Entry, error) {
	return r.queryEntries(ctx, selectEntries+` WHERE user_id = ? AND date = ? ORDER BY id`,
		userID, date.String())
}

// FindByUserBetween implements EntryStore
func (r *SQLiteRepository) FindByUserBetween(ctx context.Context, userID string, from, to core.Date) ([]core.Entry, error) {
	return r.queryEntries(ctx, selectEntries+` WHERE user_id = ? AND date BETWEEN ? AND ? ORDER BY id`,
		userID, from.String(), to.String())
}

// ListByUser implements EntryStore
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]core.Entry, error) {
	return r.queryEntries(ctx, selectEntries+` WHERE user_id = ? ORDER BY id`, userID)
}

const selectEntries = `SELECT id, user_id, date, kind, category, amount, memo FROM entries`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository) queryEntries(ctx context.Context, query string, args ...any) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

func scanEntry(row rowScanner) (core.Entry, error) {
	var (
		e        core.Entry
		date     string
		kind     string
		category string
		memo     sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UserID, &date, &kind, &category, &e.Amount, &memo); err != nil {
		return core.Entry{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Entry{}, fmt.Errorf("malformed date %q on entry %d: %w", date, e.ID, err)
	}
	e.Date = d
	e.Kind = core.Kind(kind)
	e.Category = core.Category(category)
	e.Memo = memo.String
	return e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
