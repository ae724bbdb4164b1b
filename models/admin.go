package models

import "time"

type TournamentInput struct {
	Title               string         `json:"title"`
	Description         string         `json:"description,omitempty"`
	Map                 string         `json:"map,omitempty"`
	TournamentType      TournamentType `json:"tournamentType"`
	TeamSize            int            `json:"teamSize"`
	IsFree              bool           `json:"isFree"`
	ServiceFee          float64        `json:"serviceFee"`
	PrizePool           float64        `json:"prizePool"`
	MaxParticipants     int            `json:"maxParticipants"`
	RegistrationEndDate time.Time      `json:"registrationEndDate"`
	StartDate           time.Time      `json:"tournamentStartDate"`
	BannerURL           string         `json:"bannerImage,omitempty"`
}

type PaymentDecisionAction string

const (
	DecisionApprove PaymentDecisionAction = "approve"
	DecisionReject  PaymentDecisionAction = "reject"
)

type PaymentDecision struct {
	Action        PaymentDecisionAction `json:"action"`
	TransactionID string                `json:"transactionId,omitempty"`
	Reason        string                `json:"reason,omitempty"`
}

type Winner struct {
	UserID      string  `json:"userId"`
	Position    int     `json:"position"`
	PrizeAmount float64 `json:"prizeAmount"`
}

type WinnerDeclaration struct {
	Winners []Winner `json:"winners"`
}

type WithdrawalDecision struct {
	Action PaymentDecisionAction `json:"action"`
	Reason string                `json:"reason,omitempty"`
}

type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
