package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/saoodchoudhary/rbmesports/backend"
	"github.com/saoodchoudhary/rbmesports/models"
)

const genericFailureMessage = "Something went wrong. Please try again."

type CouponValidator interface {
	ValidateCoupon(ctx context.Context, token string, req models.CouponValidationRequest) (*models.CouponResult, error)
}

// CouponService asks the backend to validate a coupon against an amount.
// Identical requests from the same user that overlap are collapsed into one call.
type CouponService struct {
	validator CouponValidator
	notifier  Notifier
	logger    *slog.Logger
	group     singleflight.Group
}

func NewCouponService(validator CouponValidator, notifier Notifier, logger *slog.Logger) *CouponService {
	return &CouponService{
		validator: validator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Apply validates code for tournamentID at baseAmount. On success it raises a
// success toast and returns the backend verdict; on rejection it raises an error
// toast carrying the server's message.
func (s *CouponService) Apply(ctx context.Context, actor Actor, tournamentID, code string, baseAmount float64) (*models.CouponResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		s.notifier.Notify(actor.UserID, models.ToastError, "Please enter a coupon code")
		return nil, ErrCouponCodeRequired
	}

	key := fmt.Sprintf("%s|%s|%s|%.2f", actor.UserID, tournamentID, strings.ToUpper(code), baseAmount)
	// Общий вызов не зависит от отмены запроса первого клиента; его ограничивает
	// таймаут backend клиента.
	callCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		result, err := s.validator.ValidateCoupon(callCtx, actor.Token, models.CouponValidationRequest{
			TournamentID: tournamentID,
			CouponCode:   code,
			Amount:       baseAmount,
		})
		if err != nil {
			s.logger.Info("coupon rejected", "user_id", actor.UserID, "tournament_id", tournamentID, "error", err)
			s.notifier.Notify(actor.UserID, models.ToastError, failureMessage(err, "Invalid coupon code"))
			return nil, err
		}
		s.notifier.Notify(actor.UserID, models.ToastSuccess,
			fmt.Sprintf("Coupon applied! You save %s", FormatINR(result.DiscountAmount)))
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			s.logger.Debug("coupon validation shared with in-flight request", "user_id", actor.UserID, "tournament_id", tournamentID)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.CouponResult), nil
	}
}

// failureMessage picks what the user sees: the backend's own message when it sent
// one, a generic message for transport problems, fallback otherwise.
func failureMessage(err error, fallback string) string {
	if msg, ok := backend.UserMessage(err); ok && msg != "" {
		return msg
	}
	if errors.Is(err, backend.ErrUnavailable) {
		return genericFailureMessage
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "Please fill in all required fields"
	}
	return fallback
}
