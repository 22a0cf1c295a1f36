package http

import (
	"sort"

	"gagyebu/internal/core"
)

type entryView struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Kind      string `json:"kind"`
	KindLabel string `json:"kind_label"`
	Category  string `json:"category"`
	Amount    int64  `json:"amount"`
	Memo      string `json:"memo,omitempty"`
}

func newEntryView(e core.Entry) entryView {
	return entryView{
		ID:        e.ID,
		Date:      e.Date.String(),
		Kind:      e.Kind.String(),
		KindLabel: e.Kind.Label(),
		Category:  e.Category.String(),
		Amount:    e.Amount,
		Memo:      e.Memo,
	}
}

func newEntryViews(entries []core.Entry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newEntryView(e))
	}
	return views
}

type dailySummaryView struct {
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

type monthTotalsView struct {
	Month   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Net     int64  `json:"net"`
}

type categoryShareView struct {
	Category string  `json:"category"`
	Amount   int64   `json:"amount,omitempty"`
	Percent  float64 `json:"percent"`
}

// newRatioViews orders ratios by descending percent, then category name.
func newRatioViews(ratios map[core.Category]float64) []categoryShareView {
	views := make([]categoryShareView, 0, len(ratios))
	for c, p := range ratios {
		views = append(views, categoryShareView{Category: c.String(), Percent: p})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Percent != views[j].Percent {
			return views[i].Percent > views[j].Percent
		}
		return views[i].Category < views[j].Category
	})
	return views
}

func newShareViews(shares []core.CategoryShare) []categoryShareView {
	views := make([]categoryShareView, 0, len(shares))
	for _, s := range shares {
		views = append(views, categoryShareView{Category: s.Category.String(), Amount: s.Amount, Percent: s.Percent})
	}
	return views
}

type recommendationView struct {
	Tier              string `json:"tier"`
	NetIncome         int64  `json:"net_income"`
	Title             string `json:"title"`
	Guidance          string `json:"guidance"`
	MaxTermYears      int    `json:"max_term_years,omitempty"`
	AnnualRate        string `json:"annual_rate,omitempty"`
	ProjectedMaturity int64  `json:"projected_maturity,omitempty"`
}

func newRecommendationView(rec core.Recommendation) recommendationView {
	v := recommendationView{
		Tier:              rec.Tier.String(),
		NetIncome:         rec.NetIncome,
		Title:             rec.Title,
		Guidance:          rec.Guidance,
		MaxTermYears:      rec.MaxTermYears,
		ProjectedMaturity: rec.ProjectedMaturity,
	}
	if !rec.AnnualRate.IsZero() {
		v.AnnualRate = rec.AnnualRate.StringFixed(1)
	}
	return v
}

type dashboardView struct {
	Month          string              `json:"month"`
	PrevMonth      string              `json:"prev_month"`
	NextMonth      string              `json:"next_month"`
	Balance        int64               `json:"balance"`
	Income         int64               `json:"income"`
	Expense        int64               `json:"expense"`
	Net            int64               `json:"net"`
	Categories     []categoryShareView `json:"categories"`
	Recommendation recommendationView  `json:"recommendation"`
}
