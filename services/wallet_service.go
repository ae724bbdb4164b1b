package services

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/saoodchoudhary/rbmesports/models"
)

var (
	upiPattern     = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountPattern = regexp.MustCompile(`^[0-9]{9,18}$`)
)

type WalletBackend interface {
	GetWallet(ctx context.Context, token string) (*models.Wallet, error)
	Withdraw(ctx context.Context, token string, req models.WithdrawalRequest) (*models.Withdrawal, error)
	SaveWithdrawalInfo(ctx context.Context, token string, info models.WithdrawalInfo) error
}

type WalletService interface {
	GetWallet(ctx context.Context, actor Actor) (*models.Wallet, error)
	Withdraw(ctx context.Context, actor Actor, req models.WithdrawalRequest) (*models.Withdrawal, error)
	SaveWithdrawalInfo(ctx context.Context, actor Actor, info models.WithdrawalInfo) error
}

type walletService struct {
	api      WalletBackend
	notifier Notifier
	logger   *slog.Logger
}

func NewWalletService(api WalletBackend, notifier Notifier, logger *slog.Logger) WalletService {
	return &walletService{api: api, notifier: notifier, logger: logger}
}

func (s *walletService) GetWallet(ctx context.Context, actor Actor) (*models.Wallet, error) {
	return s.api.GetWallet(ctx, actor.Token)
}

func (s *walletService) Withdraw(ctx context.Context, actor Actor, req models.WithdrawalRequest) (*models.Withdrawal, error) {
	if req.Amount <= 0 {
		return nil, NewValidationError(models.FieldErrors{"amount": ErrInvalidAmount.Error()})
	}
	switch req.Method {
	case "", models.WithdrawalUPI, models.WithdrawalBank:
	default:
		return nil, NewValidationError(models.FieldErrors{"method": "Method must be upi or bank"})
	}

	w, err := s.api.Withdraw(ctx, actor.Token, req)
	if err != nil {
		s.notifier.Notify(actor.UserID, models.ToastError, failureMessage(err, "Withdrawal request failed"))
		return nil, err
	}
	s.logger.Info("withdrawal requested", "user_id", actor.UserID, "amount", req.Amount)
	s.notifier.Notify(actor.UserID, models.ToastSuccess, "Withdrawal request submitted")
	return w, nil
}

// SaveWithdrawalInfo stores either a UPI id or a full set of bank details.
func (s *walletService) SaveWithdrawalInfo(ctx context.Context, actor Actor, info models.WithdrawalInfo) error {
	info = normalizeWithdrawalInfo(info)
	if fields := validateWithdrawalInfo(info); len(fields) > 0 {
		return NewValidationError(fields)
	}
	if err := s.api.SaveWithdrawalInfo(ctx, actor.Token, info); err != nil {
		s.notifier.Notify(actor.UserID, models.ToastError, failureMessage(err, "Failed to save withdrawal details"))
		return err
	}
	s.notifier.Notify(actor.UserID, models.ToastSuccess, "Withdrawal details saved")
	return nil
}

func normalizeWithdrawalInfo(info models.WithdrawalInfo) models.WithdrawalInfo {
	info.UPIID = strings.TrimSpace(info.UPIID)
	info.AccountHolderName = strings.TrimSpace(info.AccountHolderName)
	info.AccountNumber = strings.ReplaceAll(strings.TrimSpace(info.AccountNumber), " ", "")
	info.IFSC = strings.ToUpper(strings.TrimSpace(info.IFSC))
	return info
}

func validateWithdrawalInfo(info models.WithdrawalInfo) models.FieldErrors {
	fields := models.FieldErrors{}
	bank := info.AccountHolderName != "" || info.AccountNumber != "" || info.IFSC != ""

	if info.UPIID == "" && !bank {
		fields["upiId"] = "Provide a UPI ID or bank account details"
		return fields
	}
	if info.UPIID != "" && !upiPattern.MatchString(info.UPIID) {
		fields["upiId"] = "Invalid UPI ID"
	}
	if bank {
		if info.AccountHolderName == "" {
			fields["accountHolderName"] = "Account holder name is required"
		}
		if !accountPattern.MatchString(info.AccountNumber) {
			fields["accountNumber"] = "Account number must be 9 to 18 digits"
		}
		if !ifscPattern.MatchString(info.IFSC) {
			fields["ifscCode"] = "Invalid IFSC code"
		}
	}
	return fields
}
