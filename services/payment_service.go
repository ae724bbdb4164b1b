package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/storage"
)

const (
	MinTopUpAmount     = 10.0
	MaxTopUpAmount     = 100000.0
	MaxProofUploadSize = 5 << 20
)

// readUpload буферизует файл целиком. Файл больше limit отклоняется, а не обрезается.
func readUpload(r io.Reader, limit int64) (*bytes.Reader, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}
	return bytes.NewReader(data), nil
}

var allowedProofTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type PaymentGateway interface {
	CreateTopUpOrder(ctx context.Context, token string, amount float64) (*models.CheckoutOrder, error)
	VerifyTopUp(ctx context.Context, token string, v models.PaymentVerification) error
	GetWallet(ctx context.Context, token string) (*models.Wallet, error)
	SubmitManualPayment(ctx context.Context, token, tournamentID string, sub models.ManualPaymentSubmission) error
}

type PaymentConfig struct {
	PaymentPageURL string
	CheckoutKeyID  string
	MerchantName   string
}

// PaymentService decides the post-registration handoff and drives wallet top-ups
// through the hosted checkout. Signature checks belong to the backend.
type PaymentService struct {
	gateway  PaymentGateway
	uploader storage.FileUploader
	notifier Notifier
	cfg      PaymentConfig
	logger   *slog.Logger
}

func NewPaymentService(gateway PaymentGateway, uploader storage.FileUploader, notifier Notifier, cfg PaymentConfig, logger *slog.Logger) *PaymentService {
	if cfg.MerchantName == "" {
		cfg.MerchantName = "RBM Esports"
	}
	return &PaymentService{
		gateway:  gateway,
		uploader: uploader,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Handoff reports whether the browser must go to the payment page after a
// successful registration, and where.
func (s *PaymentService) Handoff(t models.Tournament, q models.Quote, reg *models.Registration) models.PaymentHandoff {
	if t.IsFree || q.Payable <= 0 {
		return models.PaymentHandoff{Required: false}
	}
	h := models.PaymentHandoff{Required: true, Amount: q.Payable}

	u, err := url.Parse(s.cfg.PaymentPageURL)
	if err != nil || s.cfg.PaymentPageURL == "" {
		// relative path served by the frontend
		u = &url.URL{Path: "/payment"}
	}
	query := u.Query()
	query.Set("tournamentId", t.ID)
	if reg != nil && reg.ID != "" {
		query.Set("registrationId", reg.ID)
	}
	query.Set("amount", strconv.FormatFloat(q.Payable, 'f', -1, 64))
	u.RawQuery = query.Encode()
	h.RedirectURL = u.String()
	return h
}

// CreateTopUpOrder asks the backend for a gateway order and shapes the options
// the checkout widget expects.
func (s *PaymentService) CreateTopUpOrder(ctx context.Context, actor Actor, amount float64) (*models.CheckoutOptions, error) {
	if amount < MinTopUpAmount || amount > MaxTopUpAmount || math.IsNaN(amount) {
		return nil, NewValidationError(models.FieldErrors{
			"amount": fmt.Sprintf("Amount must be between %s and %s", FormatINR(MinTopUpAmount), FormatINR(MaxTopUpAmount)),
		})
	}

	order, err := s.gateway.CreateTopUpOrder(ctx, actor.Token, amount)
	if err != nil {
		s.notifier.Notify(actor.UserID, models.ToastError, failureMessage(err, "Failed to create payment order"))
		return nil, err
	}

	key := order.KeyID
	if key == "" {
		key = s.cfg.CheckoutKeyID
	}
	currency := order.Currency
	if currency == "" {
		currency = "INR"
	}
	orderAmount := order.Amount
	if orderAmount == 0 {
		orderAmount = int64(math.Round(amount * 100))
	}

	return &models.CheckoutOptions{
		Key:         key,
		Amount:      orderAmount,
		Currency:    currency,
		OrderID:     order.OrderID,
		Name:        s.cfg.MerchantName,
		Description: "Wallet top-up",
		Prefill: models.CheckoutPrefill{
			Name:    actor.User.Name,
			Email:   actor.User.Email,
			Contact: actor.User.Phone,
		},
	}, nil
}

// VerifyTopUp forwards the checkout callback to the backend and returns the refreshed wallet.
func (s *PaymentService) VerifyTopUp(ctx context.Context, actor Actor, v models.PaymentVerification) (*models.Wallet, error) {
	fields := models.FieldErrors{}
	if strings.TrimSpace(v.OrderID) == "" {
		fields["razorpay_order_id"] = "Order ID is required"
	}
	if strings.TrimSpace(v.PaymentID) == "" {
		fields["razorpay_payment_id"] = "Payment ID is required"
	}
	if strings.TrimSpace(v.Signature) == "" {
		fields["razorpay_signature"] = "Signature is required"
	}
	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	if err := s.gateway.VerifyTopUp(ctx, actor.Token, v); err != nil {
		s.logger.Warn("top-up verification failed", "user_id", actor.UserID, "order_id", v.OrderID, "error", err)
		s.notifier.Notify(actor.UserID, models.ToastError, failureMessage(err, "Payment verification failed"))
		return nil, err
	}
	s.notifier.Notify(actor.UserID, models.ToastSuccess, "Money added to wallet successfully")

	wallet, err := s.gateway.GetWallet(ctx, actor.Token)
	if err != nil {
		return nil, fmt.Errorf("refresh wallet after top-up: %w", err)
	}
	return wallet, nil
}

type ManualPaymentInput struct {
	TournamentID  string
	TransactionID string
	Amount        float64
	ContentType   string
	Proof         io.Reader
}

// SubmitManualPayment stores the payment screenshot and hands the proof to the
// backend for admin review.
func (s *PaymentService) SubmitManualPayment(ctx context.Context, actor Actor, in ManualPaymentInput) error {
	fields := models.FieldErrors{}
	if strings.TrimSpace(in.TransactionID) == "" {
		fields["transactionId"] = "Transaction ID is required"
	}
	if in.Amount <= 0 {
		fields["amount"] = "Amount must be greater than zero"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	if in.Proof == nil {
		return ErrProofRequired
	}
	ext, ok := allowedProofTypes[in.ContentType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, in.ContentType)
	}
	if s.uploader == nil {
		return ErrUploadsUnavailable
	}

	owner := slug.Make(actor.User.Name)
	if owner == "" {
		owner = "user"
	}
	key := storage.ObjectKey(storage.PaymentProofPrefix, slug.Make(in.TournamentID), fmt.Sprintf("%s-%s%s", owner, uuid.NewString(), ext))
	body, err := readUpload(in.Proof, MaxProofUploadSize)
	if err != nil {
		return err
	}
	res, err := s.uploader.Upload(ctx, key, in.ContentType, body)
	if err != nil {
		s.logger.Error("failed to upload payment proof", "user_id", actor.UserID, "key", key, "error", err)
		return fmt.Errorf("upload payment proof: %w", err)
	}

	err = s.gateway.SubmitManualPayment(ctx, actor.Token, in.TournamentID, models.ManualPaymentSubmission{
		TransactionID: strings.TrimSpace(in.TransactionID),
		Amount:        in.Amount,
		ScreenshotURL: res.Location,
	})
	if err != nil {
		if delErr := s.uploader.Delete(ctx, res.Key); delErr != nil {
			s.logger.Warn("failed to delete orphaned payment proof", "key", res.Key, "error", delErr)
		}
		s.notifier.Notify(actor.UserID, models.ToastError, failureMessage(err, "Failed to submit payment"))
		return err
	}
	s.notifier.Notify(actor.UserID, models.ToastSuccess, "Payment submitted. It will be verified shortly")
	return nil
}
