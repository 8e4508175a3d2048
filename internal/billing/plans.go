// Package billing holds the static subscription-plan catalog and its lookup
// helpers. The catalog is configuration, not user data; there is no network
// involved.
package billing

import (
	"github.com/shopspring/decimal"

	"studio/internal/domain"
)

// Interval enumerates billing cycles.
type Interval string

const (
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

// PlanFeatures bounds usage and gates capabilities for a plan.
type PlanFeatures struct {
	ImagesPerMonth   int  `json:"imagesPerMonth"`
	VideosPerMonth   int  `json:"videosPerMonth"`
	StorageGB        int  `json:"storageGB"`
	Priority         bool `json:"priority"`
	TeamMembers      int  `json:"teamMembers"`
	APIAccess        bool `json:"apiAccess"`
	CommercialRights bool `json:"commercialRights"`
	CustomBranding   bool `json:"customBranding"`
	AdvancedModels   bool `json:"advancedModels"`
}

// PlanConfig is one entry of the catalog. PriceCents is the charge per
// interval; StripePriceID is the external price reference.
type PlanConfig struct {
	ID            domain.SubscriptionPlan `json:"id"`
	Name          string                  `json:"name"`
	PriceCents    int64                   `json:"price"`
	Interval      Interval                `json:"interval"`
	Features      PlanFeatures            `json:"features"`
	Popular       bool                    `json:"popular,omitempty"`
	StripePriceID string                  `json:"stripePriceId"`
}

// UsageLimits is the per-plan usage ceiling; storage is in megabytes.
type UsageLimits struct {
	Images    int
	Videos    int
	StorageMB int
}

var monthlyPlans = []PlanConfig{
	{
		ID:       domain.PlanFree,
		Name:     "Free",
		Interval: IntervalMonth,
		Features: PlanFeatures{
			ImagesPerMonth: 10,
			VideosPerMonth: 3,
			StorageGB:      1,
			TeamMembers:    1,
		},
	},
	{
		ID:            domain.PlanPro,
		Name:          "Pro",
		PriceCents:    2900,
		Interval:      IntervalMonth,
		Popular:       true,
		StripePriceID: "price_pro_monthly",
		Features: PlanFeatures{
			ImagesPerMonth:   500,
			VideosPerMonth:   50,
			StorageGB:        25,
			Priority:         true,
			TeamMembers:      3,
			APIAccess:        true,
			CommercialRights: true,
			AdvancedModels:   true,
		},
	},
	{
		ID:            domain.PlanEnterprise,
		Name:          "Enterprise",
		PriceCents:    9900,
		Interval:      IntervalMonth,
		StripePriceID: "price_enterprise_monthly",
		Features: PlanFeatures{
			ImagesPerMonth:   2000,
			VideosPerMonth:   200,
			StorageGB:        100,
			Priority:         true,
			TeamMembers:      10,
			APIAccess:        true,
			CommercialRights: true,
			CustomBranding:   true,
			AdvancedModels:   true,
		},
	},
}

// Annual entries carry a 20% discount against twelve monthly charges.
var annualPlans = []PlanConfig{
	{
		ID:            domain.PlanPro,
		Name:          "Pro",
		PriceCents:    27840,
		Interval:      IntervalYear,
		Popular:       true,
		StripePriceID: "price_pro_yearly",
		Features: PlanFeatures{
			ImagesPerMonth:   500,
			VideosPerMonth:   50,
			StorageGB:        25,
			Priority:         true,
			TeamMembers:      3,
			APIAccess:        true,
			CommercialRights: true,
			AdvancedModels:   true,
		},
	},
	{
		ID:            domain.PlanEnterprise,
		Name:          "Enterprise",
		PriceCents:    95040,
		Interval:      IntervalYear,
		StripePriceID: "price_enterprise_yearly",
		Features: PlanFeatures{
			ImagesPerMonth:   2000,
			VideosPerMonth:   200,
			StorageGB:        100,
			Priority:         true,
			TeamMembers:      10,
			APIAccess:        true,
			CommercialRights: true,
			CustomBranding:   true,
			AdvancedModels:   true,
		},
	},
}

// Plans returns the catalog for the given interval. The returned slice is a
// copy; the catalog itself is immutable.
func Plans(interval Interval) []PlanConfig {
	src := monthlyPlans
	if interval == IntervalYear {
		src = annualPlans
	}
	return append([]PlanConfig(nil), src...)
}

// PlanByID looks a plan up by id within an interval.
func PlanByID(id domain.SubscriptionPlan, interval Interval) (PlanConfig, bool) {
	for _, p := range Plans(interval) {
		if p.ID == id {
			return p, true
		}
	}
	return PlanConfig{}, false
}

// PlanByPriceID looks a plan up by its external price reference across both
// intervals.
func PlanByPriceID(priceID string) (PlanConfig, bool) {
	if priceID == "" {
		return PlanConfig{}, false
	}
	for _, p := range append(Plans(IntervalMonth), Plans(IntervalYear)...) {
		if p.StripePriceID == priceID {
			return p, true
		}
	}
	return PlanConfig{}, false
}

// LimitsFor returns the monthly usage ceiling for a plan, with storage
// converted to megabytes.
func LimitsFor(id domain.SubscriptionPlan) (UsageLimits, bool) {
	p, ok := PlanByID(id, IntervalMonth)
	if !ok {
		return UsageLimits{}, false
	}
	return UsageLimits{
		Images:    p.Features.ImagesPerMonth,
		Videos:    p.Features.VideosPerMonth,
		StorageMB: p.Features.StorageGB * 1024,
	}, true
}

// Feature names the boolean capabilities a plan can gate.
type Feature string

const (
	FeaturePriority         Feature = "priority"
	FeatureAPIAccess        Feature = "apiAccess"
	FeatureCommercialRights Feature = "commercialRights"
	FeatureCustomBranding   Feature = "customBranding"
	FeatureAdvancedModels   Feature = "advancedModels"
)

// FeatureEnabled reports whether the plan grants the capability. Unknown
// plans and unknown features report false.
func FeatureEnabled(id domain.SubscriptionPlan, f Feature) bool {
	p, ok := PlanByID(id, IntervalMonth)
	if !ok {
		return false
	}
	switch f {
	case FeaturePriority:
		return p.Features.Priority
	case FeatureAPIAccess:
		return p.Features.APIAccess
	case FeatureCommercialRights:
		return p.Features.CommercialRights
	case FeatureCustomBranding:
		return p.Features.CustomBranding
	case FeatureAdvancedModels:
		return p.Features.AdvancedModels
	default:
		return false
	}
}

// PriorityFor derives the generation-job queue priority from a plan.
func PriorityFor(id domain.SubscriptionPlan) int {
	switch id {
	case domain.PlanEnterprise:
		return 2
	case domain.PlanPro:
		return 1
	default:
		return 0
	}
}

// FormatPrice renders a cent amount as a per-interval dollar price, e.g.
// "$29.00/month".
func FormatPrice(cents int64, interval Interval) string {
	dollars := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	return "$" + dollars.StringFixed(2) + "/" + string(interval)
}

// DiscountPercent computes the rounded annual discount percentage:
// round(((monthly×12 − yearly) / (monthly×12)) × 100). Zero when the monthly
// price is zero.
func DiscountPercent(monthlyCents, yearlyCents int64) int {
	if monthlyCents == 0 {
		return 0
	}
	annual := decimal.NewFromInt(monthlyCents).Mul(decimal.NewFromInt(12))
	yearly := decimal.NewFromInt(yearlyCents)
	pct := annual.Sub(yearly).Div(annual).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}
