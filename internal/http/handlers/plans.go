package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio/internal/billing"
	"studio/internal/domain"
)

type planDTO struct {
	billing.PlanConfig
	PriceFormatted  string `json:"priceFormatted"`
	DiscountPercent int    `json:"discountPercent,omitempty"`
}

func (a *App) Plans(w http.ResponseWriter, r *http.Request) {
	interval := billing.IntervalMonth
	if r.URL.Query().Get("interval") == string(billing.IntervalYear) {
		interval = billing.IntervalYear
	}

	plans := billing.Plans(interval)
	out := make([]planDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, a.planDTO(p))
	}
	a.json(w, http.StatusOK, map[string]any{"interval": interval, "plans": out})
}

func (a *App) Plan(w http.ResponseWriter, r *http.Request) {
	id := domain.SubscriptionPlan(chi.URLParam(r, "id"))
	interval := billing.IntervalMonth
	if r.URL.Query().Get("interval") == string(billing.IntervalYear) {
		interval = billing.IntervalYear
	}

	p, ok := billing.PlanByID(id, interval)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown plan")
		return
	}
	a.json(w, http.StatusOK, a.planDTO(p))
}

func (a *App) planDTO(p billing.PlanConfig) planDTO {
	dto := planDTO{
		PlanConfig:     p,
		PriceFormatted: billing.FormatPrice(p.PriceCents, p.Interval),
	}
	if p.Interval == billing.IntervalYear {
		if monthly, ok := billing.PlanByID(p.ID, billing.IntervalMonth); ok {
			dto.DiscountPercent = billing.DiscountPercent(monthly.PriceCents, p.PriceCents)
		}
	}
	return dto
}
