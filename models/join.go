package models

import "time"

type JoinTab string

const (
	TabDetails JoinTab = "details"
	TabTeam    JoinTab = "team"
	TabPayment JoinTab = "payment"
)

// JoinView is the serialisable state of a join modal, including a fresh quote.
type JoinView struct {
	Tournament     Tournament    `json:"tournament"`
	ActiveTab      JoinTab       `json:"activeTab"`
	Composition    Composition   `json:"composition"`
	CouponCode     string        `json:"couponCode"`
	Coupon         *CouponResult `json:"coupon,omitempty"`
	CouponApplying bool          `json:"couponApplying"`
	Submitting     bool          `json:"submitting"`
	FieldErrors    FieldErrors   `json:"fieldErrors,omitempty"`
	Quote          Quote         `json:"quote"`
	OpenedAt       time.Time     `json:"openedAt"`
}

// JoinSummary is the read-only data shown before the modal opens.
type JoinSummary struct {
	Tournament       Tournament `json:"tournament"`
	WalletBalance    float64    `json:"walletBalance"`
	RegistrationOpen bool       `json:"registrationOpen"`
	Quote            Quote      `json:"quote"`
}
