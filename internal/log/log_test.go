package log

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gagyebu/internal/core"
	"gagyebu/internal/storage"
)

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{core.Invalid("amount", core.ErrInvalidAmount), ErrorTypeValidation},
		{fmt.Errorf("get: %w", storage.ErrNotFound), ErrorTypeNotFound},
		{storage.ErrAlreadyExists, ErrorTypeConflict},
		{context.DeadlineExceeded, ErrorTypeTimeout},
		{errors.New("disk I/O error"), ErrorTypeDatabase},
	}
	for _, tt := range tests {
		if got := ErrorType(tt.err); got != tt.want {
			t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestLogFieldsWithEntry(t *testing.T) {
	e := core.Entry{ID: 3, UserID: "test", Date: core.NewDate(2025, time.December, 16), Kind: core.KindExpense, Category: core.CategoryFood, Amount: 15_000}
	f := NewFields().WithEntry(e).WithOperation(OpCreate)

	if f[FieldEntryID] != int64(3) || f[FieldDate] != "2025-12-16" || f[FieldAmount] != int64(15_000) {
		t.Errorf("fields = %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Errorf("ToSlice length mismatch")
	}
}

func TestMiddlewareTagsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	h := Middleware(New(base, ComponentHTTP), func(*http.Request) string { return "req-42" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			FromContext(r.Context()).WithUser("test").InfoContext(r.Context(), "handled")
		}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/balance", nil))

	out := buf.String()
	for _, want := range []string{"request_id=req-42", "component=http", "method=GET", "path=/api/balance", "user_id=test"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestWithFieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	l := New(base, ComponentLedger).WithFields(NewFields().WithOperation(OpDelete).WithError(storage.ErrNotFound))

	l.DebugContext(context.Background(), "hidden")
	l.WarnContext(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %s", out)
	}
	for _, want := range []string{"level=WARN", "component=ledger", "operation=delete", "error_type=" + ErrorTypeNotFound} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestFromContextDefault(t *testing.T) {
	if l := FromContext(context.Background()); l.Component() != "unknown" || l.Logger == nil {
		t.Errorf("FromContext fallback = %+v", l)
	}

	stored := New(nil, ComponentWorker)
	if got := FromContext(NewContext(context.Background(), stored)); got != stored {
		t.Errorf("FromContext = %p, want %p", got, stored)
	}
}
