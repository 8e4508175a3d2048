package domain

import "time"

// SubscriptionPlan enumerates billing plans.
type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanPro        SubscriptionPlan = "pro"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// SubscriptionStatus enumerates billing lifecycle states.
type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
)

// SubscriptionInfo describes the user's current billing arrangement.
type SubscriptionInfo struct {
	Plan             SubscriptionPlan   `json:"plan" firestore:"plan"`
	Status           SubscriptionStatus `json:"status" firestore:"status"`
	CurrentPeriodEnd time.Time          `json:"currentPeriodEnd" firestore:"currentPeriodEnd"`
	CustomerID       string             `json:"customerId" firestore:"customerId"`
	SubscriptionID   string             `json:"subscriptionId,omitempty" firestore:"subscriptionId,omitempty"`
}

// UsageInfo tracks generation and storage consumption since the last reset.
// Storage is measured in megabytes.
type UsageInfo struct {
	ImagesGenerated int       `json:"imagesGenerated" firestore:"imagesGenerated"`
	VideosGenerated int       `json:"videosGenerated" firestore:"videosGenerated"`
	StorageUsedMB   int64     `json:"storageUsed" firestore:"storageUsed"`
	LastReset       time.Time `json:"lastReset" firestore:"lastReset"`
}

// BrandKit holds the user's reusable branding assets.
type BrandKit struct {
	Logo      string   `json:"logo,omitempty" firestore:"logo,omitempty"`
	Colors    []string `json:"colors" firestore:"colors"`
	Fonts     []string `json:"fonts" firestore:"fonts"`
	Templates []string `json:"templates" firestore:"templates"`
}

// User represents an authenticated account within the platform. Exactly one
// User exists per identity; it is created lazily on the identity's first
// successful authentication. The UID mirrors the identity provider's unique id
// and doubles as the document id, so it is never stored inside the document.
type User struct {
	UID          string           `json:"uid" firestore:"-"`
	Email        string           `json:"email" firestore:"email"`
	DisplayName  string           `json:"displayName" firestore:"displayName"`
	PhotoURL     string           `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Subscription SubscriptionInfo `json:"subscription" firestore:"subscription"`
	Usage        UsageInfo        `json:"usage" firestore:"usage"`
	BrandKit     BrandKit         `json:"brandKit" firestore:"brandKit"`
	CreatedAt    time.Time        `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt" firestore:"updatedAt"`
}

// IsFree reports whether the user is on the free plan.
func (u User) IsFree() bool {
	return u.Subscription.Plan == PlanFree
}
