package models

import "time"

type WalletTransaction struct {
	ID          string    `json:"_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Wallet struct {
	Balance      float64             `json:"balance"`
	Currency     string              `json:"currency,omitempty"`
	Transactions []WalletTransaction `json:"transactions,omitempty"`
}

// CheckoutOrder is the gateway order created by the backend for a top-up.
// Amount is in the smallest currency unit (paise).
type CheckoutOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key,omitempty"`
}

type CheckoutPrefill struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// CheckoutOptions is handed to the hosted checkout widget as-is.
type CheckoutOptions struct {
	Key         string          `json:"key"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	OrderID     string          `json:"order_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Prefill     CheckoutPrefill `json:"prefill"`
}

// PaymentVerification carries the raw fields from the gateway callback.
type PaymentVerification struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type WithdrawalMethod string

const (
	WithdrawalUPI  WithdrawalMethod = "upi"
	WithdrawalBank WithdrawalMethod = "bank"
)

type WithdrawalRequest struct {
	Amount float64          `json:"amount"`
	Method WithdrawalMethod `json:"method,omitempty"`
}

type WithdrawalInfo struct {
	UPIID             string `json:"upiId,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	IFSC              string `json:"ifscCode,omitempty"`
}

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

type Withdrawal struct {
	ID        string           `json:"_id"`
	UserID    string           `json:"user"`
	Amount    float64          `json:"amount"`
	Status    WithdrawalStatus `json:"status"`
	Info      WithdrawalInfo   `json:"withdrawalInfo"`
	Reason    string           `json:"reason,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
