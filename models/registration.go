package models

import "time"

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationRejected  RegistrationStatus = "rejected"
)

// Registration is what the backend returns after a successful register call.
type Registration struct {
	ID            string             `json:"_id"`
	TournamentID  string             `json:"tournament"`
	Status        RegistrationStatus `json:"status"`
	PaymentStatus string             `json:"paymentStatus,omitempty"`
	AmountPayable float64            `json:"amountPayable"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type RegistrationOutcomeKind string

const (
	OutcomeCompleted       RegistrationOutcomeKind = "completed"
	OutcomePaymentRequired RegistrationOutcomeKind = "payment_required"
)

// PaymentHandoff describes where the browser goes after registration.
type PaymentHandoff struct {
	Required    bool    `json:"required"`
	Amount      float64 `json:"amount"`
	RedirectURL string  `json:"redirectUrl,omitempty"`
}

type RegistrationOutcome struct {
	Kind         RegistrationOutcomeKind `json:"kind"`
	Registration *Registration           `json:"registration,omitempty"`
	Payment      PaymentHandoff          `json:"payment"`
}

// Participant is a registration as listed on the admin participants screen.
type Participant struct {
	ID            string       `json:"_id"`
	UserID        string       `json:"user"`
	UserName      string       `json:"userName,omitempty"`
	BgmiID        string       `json:"bgmiId,omitempty"`
	InGameName    string       `json:"inGameName,omitempty"`
	TeamName      string       `json:"teamName,omitempty"`
	Members       []TeamMember `json:"members,omitempty"`
	PaymentStatus string       `json:"paymentStatus"`
	PaymentMethod string       `json:"paymentMethod,omitempty"`
	TransactionID string       `json:"transactionId,omitempty"`
	ProofURL      string       `json:"paymentScreenshot,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ManualPaymentSubmission is a payment proof submitted for admin review.
type ManualPaymentSubmission struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	ScreenshotURL string  `json:"screenshotUrl"`
}
