package http

import (
	"net/http"

	"gagyebu/internal/core"
	applog "gagyebu/internal/log"
)

// handleCreateEntry accepts date (defaults to today), kind, category,
// amount and memo, as JSON or form fields.
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	date, err := dateOrToday(p.Get("date"), s.now())
	if err != nil {
		writeServiceError(w, r, applog.OpCreate, err)
		return
	}
	kind, err := core.ParseKind(p.Get("kind"))
	if err != nil {
		writeServiceError(w, r, applog.OpCreate, err)
		return
	}
	amount, err := core.ParseWon(p.Get("amount"))
	if err != nil {
		writeServiceError(w, r, applog.OpCreate, err)
		return
	}

	saved, err := s.ledger.CreateEntry(r.Context(), core.Entry{
		UserID:   userFromContext(r.Context()),
		Date:     date,
		Kind:     kind,
		Category: core.Category(p.Get("category")),
		Amount:   amount,
		Memo:     p.Get("memo"),
	})
	if err != nil {
		writeServiceError(w, r, applog.OpCreate, err)
		return
	}

	writeJSON(w, http.StatusCreated, "created", newEntryView(saved))
}

// handleListEntries lists the caller's entries on ?date= (default today).
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	date, err := dateOrToday(r.URL.Query().Get("date"), s.now())
	if err != nil {
		writeServiceError(w, r, applog.OpList, err)
		return
	}

	entries, err := s.ledger.FindByUserAndDate(r.Context(), userFromContext(r.Context()), date)
	if err != nil {
		writeServiceError(w, r, applog.OpList, err)
		return
	}
	writeJSON(w, http.StatusOK, "ok", newEntryViews(entries))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := entryIDVar(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := s.ledger.DeleteUserEntry(r.Context(), userFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, applog.OpDelete, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, "deleted", map[string]int64{"id": id})
}

type kindCategoriesView struct {
	Kind       string   `json:"kind"`
	Label      string   `json:"label"`
	Categories []string `json:"categories"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	var out []kindCategoriesView
	for _, k := range []core.Kind{core.KindIncome, core.KindExpense} {
		v := kindCategoriesView{Kind: k.String(), Label: k.Label()}
		for _, c := range k.Categories() {
			v.Categories = append(v.Categories, c.String())
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, "ok", out)
}
