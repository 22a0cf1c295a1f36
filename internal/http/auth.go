package http

import (
	"context"
	"net/http"
	"strings"

	applog "gagyebu/internal/log"
)

type contextKey string

const userIDKey contextKey = "user_id"

// requireUser rejects requests without a valid bearer token and stores the
// token subject in the request context.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := s.tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Rejected token",
				applog.FieldError, err)
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = applog.NewContext(ctx, applog.FromContext(ctx).WithUser(userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
