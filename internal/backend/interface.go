package backend

import (
	"context"

	"gagyebu/internal/amqp"
	"gagyebu/internal/sheets"
	"gagyebu/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the store, the optional event publisher and a
// cleanup function releasing both.
type BackendResult struct {
	Store     storage.Store
	Publisher *amqp.Client // nil when AMQP is not configured or unreachable
	Cleanup   CleanupFunc
}

// Mirror is the spreadsheet side used by the worker.
type Mirror interface {
	sheets.EntryMirror
	sheets.EntryLister
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend opens the store, ensures its schema and connects the publisher.
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
	// CreateMirror returns the Google Sheets mirror, or an in-memory one when
	// no spreadsheet is configured.
	CreateMirror(ctx context.Context, config Config) (Mirror, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	DatabaseURL string

	// Event publishing, optional
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
	MemoryBackend   BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, PostgresBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
