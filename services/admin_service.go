package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/storage"
)

const MaxBannerUploadSize = 10 << 20

type AdminBackend interface {
	ListTournaments(ctx context.Context, token string, filter models.TournamentFilter) ([]models.Tournament, error)
	CreateTournament(ctx context.Context, token string, in models.TournamentInput) (*models.Tournament, error)
	UpdateTournament(ctx context.Context, token, id string, in models.TournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, token, id string) error
	ListParticipants(ctx context.Context, token, tournamentID string) ([]models.Participant, error)
	DecidePayment(ctx context.Context, token, paymentID string, d models.PaymentDecision) error
	DeclareWinners(ctx context.Context, token, tournamentID string, d models.WinnerDeclaration) error
	ListCoupons(ctx context.Context, token string) ([]models.Coupon, error)
	CreateCoupon(ctx context.Context, token string, in models.Coupon) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, token, id string, in models.Coupon) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, token, id string) error
	ListWithdrawals(ctx context.Context, token string, status *models.WithdrawalStatus) ([]models.Withdrawal, error)
	ProcessWithdrawal(ctx context.Context, token, id string, d models.WithdrawalDecision) error
}

type BannerUpload struct {
	ContentType string
	Body        io.Reader
}

type AdminService interface {
	ListTournaments(ctx context.Context, actor Actor, filter models.TournamentFilter) ([]models.Tournament, error)
	CreateTournament(ctx context.Context, actor Actor, in models.TournamentInput, banner *BannerUpload) (*models.Tournament, error)
	UpdateTournament(ctx context.Context, actor Actor, id string, in models.TournamentInput, banner *BannerUpload) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, actor Actor, id string) error
	ListParticipants(ctx context.Context, actor Actor, tournamentID string) ([]models.Participant, error)
	DecidePayment(ctx context.Context, actor Actor, paymentID string, d models.PaymentDecision) error
	DeclareWinners(ctx context.Context, actor Actor, tournamentID string, d models.WinnerDeclaration) error
	ListCoupons(ctx context.Context, actor Actor) ([]models.Coupon, error)
	CreateCoupon(ctx context.Context, actor Actor, in models.Coupon) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, actor Actor, id string, in models.Coupon) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, actor Actor, id string) error
	ListWithdrawals(ctx context.Context, actor Actor, status *models.WithdrawalStatus) ([]models.Withdrawal, error)
	ProcessWithdrawal(ctx context.Context, actor Actor, id string, d models.WithdrawalDecision) error
}

type adminService struct {
	api      AdminBackend
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewAdminService(api AdminBackend, uploader storage.FileUploader, logger *slog.Logger) AdminService {
	return &adminService{api: api, uploader: uploader, logger: logger}
}

func (s *adminService) ListTournaments(ctx context.Context, actor Actor, filter models.TournamentFilter) ([]models.Tournament, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}
	return s.api.ListTournaments(ctx, actor.Token, filter)
}

func (s *adminService) CreateTournament(ctx context.Context, actor Actor, in models.TournamentInput, banner *BannerUpload) (*models.Tournament, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}
	in = normalizeTournamentInput(in)
	if fields := validateTournamentInput(in); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}
	if banner != nil {
		url, key, err := s.uploadBanner(ctx, in.Title, banner)
		if err != nil {
			return nil, err
		}
		in.BannerURL = url
		t, err := s.api.CreateTournament(ctx, actor.Token, in)
		if err != nil {
			s.deleteObject(ctx, key)
			return nil, err
		}
		return t, nil
	}
	return s.api.CreateTournament(ctx, actor.Token, in)
}

func (s *adminService) UpdateTournament(ctx context.Context, actor Actor, id string, in models.TournamentInput, banner *BannerUpload) (*models.Tournament, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}
	in = normalizeTournamentInput(in)
	if fields := validateTournamentInput(in); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}
	key := ""
	if banner != nil {
		url, k, err := s.uploadBanner(ctx, in.Title, banner)
		if err != nil {
			return nil, err
		}
		in.BannerURL, key = url, k
	}
	t, err := s.api.UpdateTournament(ctx, actor.Token, id, in)
	if err != nil {
		if key != "" {
			s.deleteObject(ctx, key)
		}
		return nil, err
	}
	s.logger.Info("tournament updated", "admin_id", actor.UserID, "tournament_id", id)
	return t, nil
}

func (s *adminService) DeleteTournament(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbiddenOperation
	}
	if err := s.api.DeleteTournament(ctx, actor.Token, id); err != nil {
		return err
	}
	s.logger.Info("tournament deleted", "admin_id", actor.UserID, "tournament_id", id)
	return nil
}

func (s *adminService) ListParticipants(ctx context.Context, actor Actor, tournamentID string) ([]models.Participant, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}
	return s.api.ListParticipants(ctx, actor.Token, tournamentID)
}

// DecidePayment approves (with the transaction id) or rejects (with a reason) a manual payment.
func (s *adminService) DecidePayment(ctx context.Context, actor Actor, paymentID string, d models.PaymentDecision) error {
	if !actor.IsAdmin() {
		return ErrForbiddenOperation
	}
	d.TransactionID = strings.TrimSpace(d.TransactionID)
	d.Reason = strings.TrimSpace(d.Reason)
	switch d.Action {
	case models.DecisionApprove:
		if d.TransactionID == "" {
			return NewValidationError(models.FieldErrors{"transactionId": "Transaction ID is required to approve"})
		}
	case models.DecisionReject:
		if d.Reason == "" {
			return NewValidationError(models.FieldErrors{"reason": "Reason is required to reject"})
		}
	default:
		return NewValidationError(models.FieldErrors{"action": "Action must be approve or reject"})
	}
	if err := s.api.DecidePayment(ctx, actor.Token, paymentID, d); err != nil {
		return err
	}
	s.logger.Info("payment decided", "admin_id", actor.UserID, "payment_id", paymentID, "action", d.Action)
	return nil
}

func (s *adminService) DeclareWinners(ctx context.Context, actor Actor, tournamentID string, d models.WinnerDeclaration) error {
	if !actor.IsAdmin() {
		return ErrForbiddenOperation
	}
	if fields := validateWinners(d.Winners); len(fields) > 0 {
		return NewValidationError(fields)
	}
	return s.api.DeclareWinners(ctx, actor.Token, tournamentID, d)
}

func (s *adminService) ListCoupons(ctx context.Context, actor Actor) ([]models.Coupon, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}
	return s.api.ListCoupons(ctx, actor.Token)
}

func (s *adminService) CreateCoupon(ctx context.Context, actor Actor, in models.Coupon) (*models.Coupon, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if fields := validateCoupon(in); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}
	return s.api.CreateCoupon(ctx, actor.Token, in)
}

func (s *adminService) UpdateCoupon(ctx context.Context, actor Actor, id string, in models.Coupon) (*models.Coupon, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if fields := validateCoupon(in); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}
	return s.api.UpdateCoupon(ctx, actor.Token, id, in)
}

func (s *adminService) DeleteCoupon(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbiddenOperation
	}
	return s.api.DeleteCoupon(ctx, actor.Token, id)
}

func (s *adminService) ListWithdrawals(ctx context.Context, actor Actor, status *models.WithdrawalStatus) ([]models.Withdrawal, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}
	return s.api.ListWithdrawals(ctx, actor.Token, status)
}

func (s *adminService) ProcessWithdrawal(ctx context.Context, actor Actor, id string, d models.WithdrawalDecision) error {
	if !actor.IsAdmin() {
		return ErrForbiddenOperation
	}
	d.Reason = strings.TrimSpace(d.Reason)
	switch d.Action {
	case models.DecisionApprove:
	case models.DecisionReject:
		if d.Reason == "" {
			return NewValidationError(models.FieldErrors{"reason": "Reason is required to reject"})
		}
	default:
		return NewValidationError(models.FieldErrors{"action": "Action must be approve or reject"})
	}
	if err := s.api.ProcessWithdrawal(ctx, actor.Token, id, d); err != nil {
		return err
	}
	s.logger.Info("withdrawal processed", "admin_id", actor.UserID, "withdrawal_id", id, "action", d.Action)
	return nil
}

func (s *adminService) uploadBanner(ctx context.Context, title string, banner *BannerUpload) (string, string, error) {
	if s.uploader == nil {
		return "", "", ErrUploadsUnavailable
	}
	ext, ok := allowedProofTypes[banner.ContentType]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFile, banner.ContentType)
	}
	name := slug.Make(title)
	if name == "" {
		name = "tournament"
	}
	key := storage.ObjectKey(storage.BannerPrefix, fmt.Sprintf("%s-%s%s", name, uuid.NewString()[:8], ext))
	body, err := readUpload(banner.Body, MaxBannerUploadSize)
	if err != nil {
		return "", "", err
	}
	res, err := s.uploader.Upload(ctx, key, banner.ContentType, body)
	if err != nil {
		s.logger.Error("failed to upload tournament banner", "key", key, "error", err)
		return "", "", fmt.Errorf("upload banner: %w", err)
	}
	return res.Location, res.Key, nil
}

func (s *adminService) deleteObject(ctx context.Context, key string) {
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete orphaned object", "key", key, "error", err)
	}
}

func normalizeTournamentInput(in models.TournamentInput) models.TournamentInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Map = strings.TrimSpace(in.Map)
	if in.TeamSize == 0 {
		switch in.TournamentType {
		case models.TournamentSolo:
			in.TeamSize = 1
		case models.TournamentDuo:
			in.TeamSize = 2
		case models.TournamentSquad:
			in.TeamSize = 4
		}
	}
	if in.IsFree {
		in.ServiceFee = 0
	}
	return in
}

func validateTournamentInput(in models.TournamentInput) models.FieldErrors {
	fields := models.FieldErrors{}
	if in.Title == "" {
		fields["title"] = "Title is required"
	}
	if !in.TournamentType.Valid() {
		fields["tournamentType"] = "Tournament type must be solo, duo or squad"
	}
	switch in.TournamentType {
	case models.TournamentSolo:
		if in.TeamSize != 1 {
			fields["teamSize"] = "Solo tournaments have a team size of 1"
		}
	case models.TournamentDuo:
		if in.TeamSize != 2 {
			fields["teamSize"] = "Duo tournaments have a team size of 2"
		}
	case models.TournamentSquad:
		if in.TeamSize < 2 {
			fields["teamSize"] = "Squad team size must be at least 2"
		}
	}
	if !in.IsFree && in.ServiceFee <= 0 {
		fields["serviceFee"] = "Paid tournaments need a service fee"
	}
	if in.PrizePool < 0 {
		fields["prizePool"] = "Prize pool cannot be negative"
	}
	if in.MaxParticipants <= 0 {
		fields["maxParticipants"] = "Max participants must be greater than zero"
	}
	if in.RegistrationEndDate.IsZero() {
		fields["registrationEndDate"] = "Registration end date is required"
	}
	if !in.StartDate.IsZero() && !in.RegistrationEndDate.IsZero() && in.StartDate.Before(in.RegistrationEndDate) {
		fields["tournamentStartDate"] = "Start date must be after registration closes"
	}
	return fields
}

func validateCoupon(in models.Coupon) models.FieldErrors {
	fields := models.FieldErrors{}
	if in.Code == "" {
		fields["code"] = "Code is required"
	}
	switch in.DiscountType {
	case models.DiscountPercentage:
		if in.DiscountValue <= 0 || in.DiscountValue > 100 {
			fields["discountValue"] = "Percentage must be between 0 and 100"
		}
	case models.DiscountFlat:
		if in.DiscountValue <= 0 {
			fields["discountValue"] = "Discount must be greater than zero"
		}
	case models.DiscountFree:
	default:
		fields["discountType"] = "Discount type must be percentage, flat or free"
	}
	if in.UsageLimit < 0 {
		fields["usageLimit"] = "Usage limit cannot be negative"
	}
	if in.ValidFrom != nil && in.ValidUntil != nil && in.ValidUntil.Before(*in.ValidFrom) {
		fields["validUntil"] = "Expiry must be after the start date"
	}
	return fields
}

func validateWinners(winners []models.Winner) models.FieldErrors {
	fields := models.FieldErrors{}
	if len(winners) == 0 {
		fields["winners"] = "At least one winner is required"
		return fields
	}
	seen := make(map[int]bool, len(winners))
	for i, w := range winners {
		if strings.TrimSpace(w.UserID) == "" {
			fields[fmt.Sprintf("winners[%d].userId", i)] = "Player is required"
		}
		if w.Position < 1 {
			fields[fmt.Sprintf("winners[%d].position", i)] = "Position must be 1 or higher"
		} else if seen[w.Position] {
			fields[fmt.Sprintf("winners[%d].position", i)] = "Position is already taken"
		}
		seen[w.Position] = true
		if w.PrizeAmount < 0 {
			fields[fmt.Sprintf("winners[%d].prizeAmount", i)] = "Prize cannot be negative"
		}
	}
	return fields
}
