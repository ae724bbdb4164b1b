package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saoodchoudhary/rbmesports/models"
)

type Registrar interface {
	RegisterSquad(ctx context.Context, token, tournamentID string, payload models.SquadPayload) (*models.Registration, error)
	RegisterSoloDuo(ctx context.Context, token, tournamentID string, payload models.RegistrationPayload) (*models.Registration, error)
}

type RegistrationService struct {
	registrar Registrar
	payments  *PaymentService
	notifier  Notifier
	logger    *slog.Logger
}

func NewRegistrationService(registrar Registrar, payments *PaymentService, notifier Notifier, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{
		registrar: registrar,
		payments:  payments,
		notifier:  notifier,
		logger:    logger,
	}
}

// Submit validates the composition, sends the payload matching the tournament type
// and decides whether a payment handoff follows. Invalid drafts never reach the backend.
func (s *RegistrationService) Submit(ctx context.Context, actor Actor, t models.Tournament, comp models.Composition, coupon *models.CouponResult) (*models.RegistrationOutcome, error) {
	if comp == nil || comp.Type() != t.TournamentType {
		return nil, ErrCompositionMismatch
	}
	if sq, ok := comp.(*models.SquadComposition); ok && len(sq.Members) != expectedSquadSlots(t) {
		return nil, ErrInvalidMemberCount
	}
	if fields := comp.Validate(); len(fields) > 0 {
		s.notifier.Notify(actor.UserID, models.ToastError, "Please fill in all required fields")
		return nil, NewValidationError(fields)
	}

	couponCode := ""
	if coupon != nil && !t.IsFree {
		couponCode = coupon.Code
	}
	payload := comp.Payload(couponCode)

	var (
		reg *models.Registration
		err error
	)
	switch p := payload.(type) {
	case models.SquadPayload:
		reg, err = s.registrar.RegisterSquad(ctx, actor.Token, t.ID, p)
	case models.SoloPayload, models.DuoPayload:
		reg, err = s.registrar.RegisterSoloDuo(ctx, actor.Token, t.ID, p)
	default:
		return nil, fmt.Errorf("%w: payload %T", ErrUnsupportedTournamentType, payload)
	}
	if err != nil {
		s.logger.Warn("registration failed", "user_id", actor.UserID, "tournament_id", t.ID, "endpoint", payload.Endpoint(), "error", err)
		s.notifier.Notify(actor.UserID, models.ToastError, failureMessage(err, "Registration failed"))
		return nil, err
	}

	quote := CalculateQuote(t, coupon)
	handoff := s.payments.Handoff(t, quote, reg)
	outcome := &models.RegistrationOutcome{
		Registration: reg,
		Payment:      handoff,
	}
	if handoff.Required {
		outcome.Kind = models.OutcomePaymentRequired
		s.notifier.Notify(actor.UserID, models.ToastInfo,
			fmt.Sprintf("Complete the payment of %s to confirm your slot", FormatINR(handoff.Amount)))
	} else {
		outcome.Kind = models.OutcomeCompleted
		s.notifier.Notify(actor.UserID, models.ToastSuccess, "Registration successful!")
	}

	s.logger.Info("registration submitted", "user_id", actor.UserID, "tournament_id", t.ID, "outcome", outcome.Kind)
	return outcome, nil
}

func expectedSquadSlots(t models.Tournament) int {
	if t.TeamSize < 1 {
		return 0
	}
	return t.TeamSize - 1
}
