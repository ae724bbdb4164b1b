package models

import (
	"encoding/json"
	"strings"
	"time"
)

// TournamentType определяет состав команды, который требуется для регистрации.
type TournamentType string

const (
	TournamentSolo  TournamentType = "solo"
	TournamentDuo   TournamentType = "duo"
	TournamentSquad TournamentType = "squad"
)

func (t TournamentType) Valid() bool {
	switch t {
	case TournamentSolo, TournamentDuo, TournamentSquad:
		return true
	}
	return false
}

// UnmarshalJSON принимает любой тип: неизвестный турнир остается в каталоге,
// а регистрация на него отклоняется через Valid.
func (t *TournamentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = TournamentType(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusOngoing   TournamentStatus = "ongoing"
	StatusCompleted TournamentStatus = "completed"
	StatusCancelled TournamentStatus = "cancelled"
)

// Tournament is the read-only view of a tournament as served by the backend API.
type Tournament struct {
	ID                  string           `json:"_id"`
	Title               string           `json:"title"`
	Description         string           `json:"description,omitempty"`
	Game                string           `json:"game,omitempty"`
	Map                 string           `json:"map,omitempty"`
	TournamentType      TournamentType   `json:"tournamentType"`
	TeamSize            int              `json:"teamSize"`
	IsFree              bool             `json:"isFree"`
	ServiceFee          float64          `json:"serviceFee"`
	PrizePool           float64          `json:"prizePool"`
	MaxParticipants     int              `json:"maxParticipants"`
	CurrentParticipants int              `json:"currentParticipants"`
	RegistrationEndDate time.Time        `json:"registrationEndDate"`
	StartDate           time.Time        `json:"tournamentStartDate"`
	Status              TournamentStatus `json:"status"`
	BannerURL           string           `json:"bannerImage,omitempty"`
}

// BaseAmount is the entry amount before any coupon is applied.
func (t Tournament) BaseAmount() float64 {
	if t.IsFree {
		return 0
	}
	return t.ServiceFee
}

func (t Tournament) SlotsLeft() int {
	left := t.MaxParticipants - t.CurrentParticipants
	if left < 0 {
		return 0
	}
	return left
}

// IsRegistrationOpen reports whether a new registration can still be accepted at now.
// The backend re-checks both conditions on submit.
func (t Tournament) IsRegistrationOpen(now time.Time) bool {
	if !t.RegistrationEndDate.IsZero() && !now.Before(t.RegistrationEndDate) {
		return false
	}
	if t.MaxParticipants > 0 && t.SlotsLeft() == 0 {
		return false
	}
	return t.Status == "" || t.Status == StatusUpcoming
}

type TournamentFilter struct {
	Status         *TournamentStatus
	TournamentType *TournamentType
	Page           int
	Limit          int
}
