package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"gagyebu/internal/core"
	applog "gagyebu/internal/log"
)

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.agg.TotalBalance(r.Context(), userFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}
	writeJSON(w, http.StatusOK, "ok", map[string]int64{"balance": balance})
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	date, err := core.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}

	sum, err := s.agg.DailySummary(r.Context(), userFromContext(r.Context()), date)
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}
	writeJSON(w, http.StatusOK, "ok", dailySummaryView{
		Date:    sum.Date.String(),
		Income:  sum.Income,
		Expense: sum.Expense,
	})
}

func (s *Server) handleMonthTotals(w http.ResponseWriter, r *http.Request) {
	ym, err := monthVar(r, s.now())
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}

	ov, err := s.agg.MonthOverview(r.Context(), userFromContext(r.Context()), ym)
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}
	writeJSON(w, http.StatusOK, "ok", monthTotalsView{
		Month:   ym.String(),
		Income:  ov.Income,
		Expense: ov.Expense,
		Net:     ov.Net,
	})
}

func (s *Server) handleMonthCategories(w http.ResponseWriter, r *http.Request) {
	ym, err := monthVar(r, s.now())
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}

	ratios, err := s.agg.CategoryExpenseRatios(r.Context(), userFromContext(r.Context()), ym)
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}
	writeJSON(w, http.StatusOK, "ok", newRatioViews(ratios))
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	ym, err := monthVar(r, s.now())
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}

	rec, err := s.agg.Recommendation(r.Context(), userFromContext(r.Context()), ym)
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}
	writeJSON(w, http.StatusOK, "ok", newRecommendationView(rec))
}

// handleDashboard gathers the month overview, running balance and savings
// recommendation concurrently.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ym, err := monthVar(r, s.now())
	if err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}
	userID := userFromContext(r.Context())

	var (
		ov      core.MonthOverview
		balance int64
		rec     core.Recommendation
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		ov, err = s.agg.MonthOverview(ctx, userID, ym)
		return err
	})
	g.Go(func() error {
		var err error
		balance, err = s.agg.TotalBalance(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		rec, err = s.agg.Recommendation(ctx, userID, ym)
		return err
	})
	if err := g.Wait(); err != nil {
		writeServiceError(w, r, applog.OpAggregate, err)
		return
	}

	writeJSON(w, http.StatusOK, "ok", dashboardView{
		Month:          ym.String(),
		PrevMonth:      ym.Prev().String(),
		NextMonth:      ym.Next().String(),
		Balance:        balance,
		Income:         ov.Income,
		Expense:        ov.Expense,
		Net:            ov.Net,
		Categories:     newShareViews(ov.ByCategory),
		Recommendation: newRecommendationView(rec),
	})
}
