package models

import (
	"fmt"
	"strings"
)

// RegistrationEndpoint names the backend route family a payload is sent to.
type RegistrationEndpoint string

const (
	EndpointSoloDuo RegistrationEndpoint = "solo_duo"
	EndpointSquad   RegistrationEndpoint = "squad"
)

// TeamMember is one teammate slot. The submitting user is never stored here:
// the backend resolves the captain from the session token.
type TeamMember struct {
	BgmiID     string `json:"bgmiId"`
	InGameName string `json:"inGameName"`
}

// FieldErrors maps a form field path to its error message.
type FieldErrors map[string]string

// Composition is the team composition draft of a join attempt.
// Implementations are SoloComposition, *DuoComposition and *SquadComposition.
type Composition interface {
	Type() TournamentType
	Validate() FieldErrors
	Payload(couponCode string) RegistrationPayload
	isComposition()
}

type SoloComposition struct{}

func (SoloComposition) Type() TournamentType { return TournamentSolo }

func (SoloComposition) Validate() FieldErrors { return nil }

func (SoloComposition) Payload(couponCode string) RegistrationPayload {
	return SoloPayload{CouponCode: strings.TrimSpace(couponCode)}
}

func (SoloComposition) isComposition() {}

type DuoComposition struct {
	PartnerBgmiID     string `json:"partnerBgmiId"`
	PartnerInGameName string `json:"partnerInGameName"`
}

func (*DuoComposition) Type() TournamentType { return TournamentDuo }

func (c *DuoComposition) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(c.PartnerBgmiID) == "" {
		errs["partnerBgmiId"] = "Partner BGMI ID is required"
	}
	if strings.TrimSpace(c.PartnerInGameName) == "" {
		errs["partnerInGameName"] = "Partner in-game name is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (c *DuoComposition) Payload(couponCode string) RegistrationPayload {
	return DuoPayload{
		PartnerBgmiID:     strings.TrimSpace(c.PartnerBgmiID),
		PartnerInGameName: strings.TrimSpace(c.PartnerInGameName),
		CouponCode:        strings.TrimSpace(couponCode),
	}
}

func (*DuoComposition) isComposition() {}

type SquadComposition struct {
	TeamName string       `json:"teamName"`
	Members  []TeamMember `json:"members"`
}

func (*SquadComposition) Type() TournamentType { return TournamentSquad }

func (c *SquadComposition) Validate() FieldErrors {
	errs := FieldErrors{}
	for i, m := range c.Members {
		if strings.TrimSpace(m.BgmiID) == "" {
			errs[fmt.Sprintf("members[%d].bgmiId", i)] = fmt.Sprintf("Teammate %d BGMI ID is required", i+1)
		}
		if strings.TrimSpace(m.InGameName) == "" {
			errs[fmt.Sprintf("members[%d].inGameName", i)] = fmt.Sprintf("Teammate %d in-game name is required", i+1)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (c *SquadComposition) Payload(couponCode string) RegistrationPayload {
	members := make([]TeamMember, len(c.Members))
	for i, m := range c.Members {
		members[i] = TeamMember{
			BgmiID:     strings.TrimSpace(m.BgmiID),
			InGameName: strings.TrimSpace(m.InGameName),
		}
	}
	return SquadPayload{
		TeamName:   strings.TrimSpace(c.TeamName),
		Members:    members,
		CouponCode: strings.TrimSpace(couponCode),
	}
}

func (*SquadComposition) isComposition() {}

// NewComposition returns an empty draft shaped for the tournament type.
// Squads get teamSize-1 member slots.
func NewComposition(t Tournament) (Composition, error) {
	switch t.TournamentType {
	case TournamentSolo:
		return SoloComposition{}, nil
	case TournamentDuo:
		return &DuoComposition{}, nil
	case TournamentSquad:
		slots := t.TeamSize - 1
		if slots < 0 {
			slots = 0
		}
		return &SquadComposition{Members: make([]TeamMember, slots)}, nil
	default:
		return nil, fmt.Errorf("unsupported tournament type %q", t.TournamentType)
	}
}

// RegistrationPayload is the request body sent to the backend registration endpoint.
type RegistrationPayload interface {
	Endpoint() RegistrationEndpoint
	isPayload()
}

type SoloPayload struct {
	CouponCode string `json:"couponCode,omitempty"`
}

func (SoloPayload) Endpoint() RegistrationEndpoint { return EndpointSoloDuo }
func (SoloPayload) isPayload()                     {}

type DuoPayload struct {
	PartnerBgmiID     string `json:"partnerBgmiId"`
	PartnerInGameName string `json:"partnerInGameName"`
	CouponCode        string `json:"couponCode,omitempty"`
}

func (DuoPayload) Endpoint() RegistrationEndpoint { return EndpointSoloDuo }
func (DuoPayload) isPayload()                     {}

type SquadPayload struct {
	TeamName   string       `json:"teamName,omitempty"`
	Members    []TeamMember `json:"members"`
	CouponCode string       `json:"couponCode,omitempty"`
}

func (SquadPayload) Endpoint() RegistrationEndpoint { return EndpointSquad }
func (SquadPayload) isPayload()                     {}

// CompositionInput is the wire shape of a draft update. Only the fields that match
// the session's tournament type are applied.
type CompositionInput struct {
	TeamName          *string      `json:"teamName,omitempty"`
	Members           []TeamMember `json:"members,omitempty"`
	PartnerBgmiID     *string      `json:"partnerBgmiId,omitempty"`
	PartnerInGameName *string      `json:"partnerInGameName,omitempty"`
}
