package billing

import (
	"testing"

	"studio/internal/domain"
)

func TestPlansCatalog(t *testing.T) {
	monthly := Plans(IntervalMonth)
	if len(monthly) != 3 {
		t.Fatalf("monthly catalog has %d plans, want 3", len(monthly))
	}
	annual := Plans(IntervalYear)
	if len(annual) != 2 {
		t.Fatalf("annual catalog has %d plans, want 2 (free has no annual entry)", len(annual))
	}

	// The returned slice is a copy; mutating it must not poison the catalog.
	monthly[0].Name = "mutated"
	if Plans(IntervalMonth)[0].Name == "mutated" {
		t.Fatalf("Plans() returned a live reference into the catalog")
	}
}

func TestPlanByID(t *testing.T) {
	p, ok := PlanByID(domain.PlanPro, IntervalMonth)
	if !ok {
		t.Fatalf("PlanByID(pro, month) not found")
	}
	if p.PriceCents != 2900 || !p.Popular {
		t.Fatalf("pro monthly = %+v, want 2900 cents and popular", p)
	}

	p, ok = PlanByID(domain.PlanEnterprise, IntervalYear)
	if !ok || p.PriceCents != 95040 {
		t.Fatalf("enterprise yearly = %+v ok=%v, want 95040 cents", p, ok)
	}

	if _, ok := PlanByID(domain.PlanFree, IntervalYear); ok {
		t.Fatalf("free plan should have no annual entry")
	}
}

func TestPlanByPriceID(t *testing.T) {
	p, ok := PlanByPriceID("price_pro_yearly")
	if !ok || p.ID != domain.PlanPro || p.Interval != IntervalYear {
		t.Fatalf("PlanByPriceID(price_pro_yearly) = %+v ok=%v", p, ok)
	}
	if _, ok := PlanByPriceID(""); ok {
		t.Fatalf("empty price id must not match (free has no price reference)")
	}
	if _, ok := PlanByPriceID("price_unknown"); ok {
		t.Fatalf("unknown price id matched")
	}
}

func TestLimitsFor(t *testing.T) {
	limits, ok := LimitsFor(domain.PlanPro)
	if !ok {
		t.Fatalf("LimitsFor(pro) not found")
	}
	if limits.Images != 500 || limits.Videos != 50 || limits.StorageMB != 25*1024 {
		t.Fatalf("pro limits = %+v", limits)
	}

	if _, ok := LimitsFor(domain.SubscriptionPlan("gold")); ok {
		t.Fatalf("unknown plan returned limits")
	}
}

func TestFeatureEnabled(t *testing.T) {
	if FeatureEnabled(domain.PlanFree, FeatureAPIAccess) {
		t.Fatalf("free plan should not have api access")
	}
	if !FeatureEnabled(domain.PlanPro, FeatureCommercialRights) {
		t.Fatalf("pro plan should have commercial rights")
	}
	if FeatureEnabled(domain.PlanPro, FeatureCustomBranding) {
		t.Fatalf("custom branding is enterprise only")
	}
	if !FeatureEnabled(domain.PlanEnterprise, FeatureCustomBranding) {
		t.Fatalf("enterprise plan should have custom branding")
	}
	if FeatureEnabled(domain.PlanPro, Feature("unknown")) {
		t.Fatalf("unknown feature reported enabled")
	}
}

func TestPriorityFor(t *testing.T) {
	if got := PriorityFor(domain.PlanEnterprise); got != 2 {
		t.Fatalf("PriorityFor(enterprise) = %d, want 2", got)
	}
	if got := PriorityFor(domain.PlanPro); got != 1 {
		t.Fatalf("PriorityFor(pro) = %d, want 1", got)
	}
	if got := PriorityFor(domain.PlanFree); got != 0 {
		t.Fatalf("PriorityFor(free) = %d, want 0", got)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(2900, IntervalMonth); got != "$29.00/month" {
		t.Fatalf("FormatPrice(2900, month) = %q", got)
	}
	if got := FormatPrice(27840, IntervalYear); got != "$278.40/year" {
		t.Fatalf("FormatPrice(27840, year) = %q", got)
	}
	if got := FormatPrice(0, IntervalMonth); got != "$0.00/month" {
		t.Fatalf("FormatPrice(0, month) = %q", got)
	}
}

func TestDiscountPercent(t *testing.T) {
	if got := DiscountPercent(2900, 27840); got != 20 {
		t.Fatalf("DiscountPercent(2900, 27840) = %d, want 20", got)
	}
	if got := DiscountPercent(9900, 95040); got != 20 {
		t.Fatalf("DiscountPercent(9900, 95040) = %d, want 20", got)
	}
	if got := DiscountPercent(0, 0); got != 0 {
		t.Fatalf("DiscountPercent(0, 0) = %d, want 0", got)
	}
}
