package http

import (
	"errors"
	"net/http"
	"time"

	applog "gagyebu/internal/log"
	"gagyebu/internal/services"
)

type tokenView struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	id := p.GetRaw("id")
	_, err := s.ledger.Register(r.Context(), id, p.GetRaw("secret"))
	switch {
	case errors.Is(err, services.ErrUserExists):
		writeError(w, http.StatusConflict, "user already exists")
		return
	case err != nil:
		writeServiceError(w, r, applog.OpRegister, err)
		return
	}

	writeJSON(w, http.StatusCreated, "registered", map[string]string{"user_id": id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	id := p.GetRaw("id")
	ok, err := s.ledger.Authenticate(r.Context(), id, p.GetRaw("secret"))
	if err != nil {
		writeServiceError(w, r, applog.OpLogin, err)
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, exp, err := s.tokens.Generate(id)
	if err != nil {
		writeServiceError(w, r, applog.OpLogin, err)
		return
	}
	writeJSON(w, http.StatusOK, "authenticated", tokenView{UserID: id, Token: token, ExpiresAt: exp})
}
