package models

import "time"

// CouponResult is the backend's verdict for a coupon code against an amount.
// It is never derived locally.
type CouponResult struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}

type CouponValidationRequest struct {
	TournamentID string  `json:"tournamentId"`
	CouponCode   string  `json:"couponCode"`
	Amount       float64 `json:"amount"`
}

// Quote is the price shown in the join modal.
type Quote struct {
	BaseAmount  float64 `json:"baseAmount"`
	Discount    float64 `json:"discount"`
	Payable     float64 `json:"payable"`
	HasDiscount bool    `json:"hasDiscount"`
	// Display strings; Original is rendered struck through when HasDiscount.
	Original string `json:"originalDisplay"`
	Total    string `json:"totalDisplay"`
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
	DiscountFree       DiscountType = "free"
)

// Coupon is the admin-managed coupon definition. Its rules are evaluated by the backend only.
type Coupon struct {
	ID             string       `json:"_id,omitempty"`
	Code           string       `json:"code"`
	Description    string       `json:"description,omitempty"`
	DiscountType   DiscountType `json:"discountType"`
	DiscountValue  float64      `json:"discountValue"`
	MinOrderAmount float64      `json:"minOrderAmount,omitempty"`
	MaxDiscount    float64      `json:"maxDiscount,omitempty"`
	UsageLimit     int          `json:"usageLimit,omitempty"`
	UsedCount      int          `json:"usedCount,omitempty"`
	PerUserLimit   int          `json:"perUserLimit,omitempty"`
	AllowedUsers   []string     `json:"allowedUsers,omitempty"`
	Tournaments    []string     `json:"applicableTournaments,omitempty"`
	ValidFrom      *time.Time   `json:"validFrom,omitempty"`
	ValidUntil     *time.Time   `json:"validUntil,omitempty"`
	IsActive       bool         `json:"isActive"`
}
