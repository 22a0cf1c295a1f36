package backend

import (
	"context"
	"path/filepath"
	"testing"

	"gagyebu/internal/config"
	"gagyebu/internal/core"
	sheetmem "gagyebu/internal/sheets/memory"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Error("expected error for unknown backend")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
		t.Error("expected error for postgres without DATABASE_URL")
	}

	cfg, err := FromAppConfig(&config.Config{DataBackend: "postgres", DatabaseURL: "postgres://localhost/ledger", AMQPQueue: "q"})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != PostgresBackend || cfg.DatabaseURL == "" || cfg.AMQPQueue != "q" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseBackendType(t *testing.T) {
	for in, want := range map[string]BackendType{"sqlite": SQLiteBackend, " Postgres ": PostgresBackend, "MEMORY": MemoryBackend} {
		got, err := ParseBackendType(in)
		if err != nil || got != want {
			t.Errorf("ParseBackendType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseBackendType("sheets"); err == nil {
		t.Error("expected error for sheets")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{Type: MemoryBackend}, false},
		{Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{Config{Type: SQLiteBackend}, true},
		{Config{Type: PostgresBackend}, true},
		{Config{Type: "redis"}, true},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) = %v, wantErr %v", tt.cfg, err, tt.wantErr)
		}
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)

	for _, cfg := range []Config{
		{Type: MemoryBackend},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db")},
	} {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			res, err := f.CreateBackend(ctx, cfg)
			if err != nil {
				t.Fatalf("CreateBackend: %v", err)
			}
			defer res.Cleanup()

			if res.Publisher != nil {
				t.Error("publisher should be nil without AMQP_URL")
			}
			if err := res.Store.CreateUser(ctx, core.User{ID: "u1", Secret: "pw"}); err != nil {
				t.Fatalf("store not usable: %v", err)
			}
		})
	}
}

func TestCreateMirrorDefaultsToMemory(t *testing.T) {
	m, err := NewFactory(nil).CreateMirror(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateMirror: %v", err)
	}
	if _, ok := m.(*sheetmem.Mirror); !ok {
		t.Errorf("mirror = %T, want in-memory mirror", m)
	}
}
