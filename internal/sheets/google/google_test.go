package google

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gagyebu/internal/core"
)

func TestNewClient_MissingSpreadsheetID(t *testing.T) {
	_, err := NewClient(context.Background(), Config{ServiceAccountJSON: "{}"})
	if err == nil || err.Error() != "missing spreadsheet id" {
		t.Fatalf("err = %v, want missing spreadsheet id", err)
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "sa.json")
	if err := os.WriteFile(path, []byte(`{"from":"file"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr string
	}{
		{"inline wins", Config{ServiceAccountJSON: `{"from":"inline"}`, ServiceAccountFile: path}, `{"from":"inline"}`, ""},
		{"file", Config{ServiceAccountFile: path}, `{"from":"file"}`, ""},
		{"missing file", Config{ServiceAccountFile: filepath.Join(dir, "nope.json")}, "", "read service account file"},
		{"nothing", Config{}, "", "missing service account credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadCredentials(tt.cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadCredentials: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("credentials = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClient_UninitializedService(t *testing.T) {
	c := &Client{spreadsheetID: "test", sheetName: "Ledger"}
	ctx := context.Background()
	e := core.Entry{ID: 1, UserID: "test", Date: core.NewDate(2025, time.December, 15), Kind: core.KindIncome, Category: core.CategorySalary, Amount: 1}

	if err := c.AppendEntry(ctx, e); err == nil {
		t.Error("AppendEntry should fail without a service")
	}
	if err := c.DeleteEntry(ctx, 1); err == nil {
		t.Error("DeleteEntry should fail without a service")
	}
	if _, err := c.ListEntries(ctx); err == nil {
		t.Error("ListEntries should fail without a service")
	}
}
