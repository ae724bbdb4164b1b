package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/repositories"
	"github.com/saoodchoudhary/rbmesports/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ------------------------
// Fake Backend
// ------------------------

type FakeBackend struct {
	mu    sync.Mutex
	trace []string

	GetTournamentFunc       func(ctx context.Context, token, id string) (*models.Tournament, error)
	ListTournamentsFunc     func(ctx context.Context, token string, filter models.TournamentFilter) ([]models.Tournament, error)
	ValidateCouponFunc      func(ctx context.Context, token string, req models.CouponValidationRequest) (*models.CouponResult, error)
	RegisterSquadFunc       func(ctx context.Context, token, tournamentID string, payload models.SquadPayload) (*models.Registration, error)
	RegisterSoloDuoFunc     func(ctx context.Context, token, tournamentID string, payload models.RegistrationPayload) (*models.Registration, error)
	SubmitManualPaymentFunc func(ctx context.Context, token, tournamentID string, sub models.ManualPaymentSubmission) error
	GetWalletFunc           func(ctx context.Context, token string) (*models.Wallet, error)
	CreateTopUpOrderFunc    func(ctx context.Context, token string, amount float64) (*models.CheckoutOrder, error)
	VerifyTopUpFunc         func(ctx context.Context, token string, v models.PaymentVerification) error
	WithdrawFunc            func(ctx context.Context, token string, req models.WithdrawalRequest) (*models.Withdrawal, error)
	SaveWithdrawalInfoFunc  func(ctx context.Context, token string, info models.WithdrawalInfo) error
	LoginFunc               func(ctx context.Context, creds models.Credentials) (string, *models.User, error)
	MeFunc                  func(ctx context.Context, token string) (*models.User, error)
	CreateTournamentFunc    func(ctx context.Context, token string, in models.TournamentInput) (*models.Tournament, error)
	UpdateTournamentFunc    func(ctx context.Context, token, id string, in models.TournamentInput) (*models.Tournament, error)
	DecidePaymentFunc       func(ctx context.Context, token, paymentID string, d models.PaymentDecision) error
	DeclareWinnersFunc      func(ctx context.Context, token, tournamentID string, d models.WinnerDeclaration) error
	ProcessWithdrawalFunc   func(ctx context.Context, token, id string, d models.WithdrawalDecision) error
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{trace: []string{}}
}

func (f *FakeBackend) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

func (f *FakeBackend) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.trace...)
}

func (f *FakeBackend) Calls(step string) int {
	n := 0
	for _, s := range f.Trace() {
		if s == step {
			n++
		}
	}
	return n
}

func (f *FakeBackend) GetTournament(ctx context.Context, token, id string) (*models.Tournament, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, token, id)
	}
	return &models.Tournament{ID: id}, nil
}

func (f *FakeBackend) ListTournaments(ctx context.Context, token string, filter models.TournamentFilter) ([]models.Tournament, error) {
	f.record("ListTournaments")
	if f.ListTournamentsFunc != nil {
		return f.ListTournamentsFunc(ctx, token, filter)
	}
	return []models.Tournament{}, nil
}

func (f *FakeBackend) ValidateCoupon(ctx context.Context, token string, req models.CouponValidationRequest) (*models.CouponResult, error) {
	f.record("ValidateCoupon")
	if f.ValidateCouponFunc != nil {
		return f.ValidateCouponFunc(ctx, token, req)
	}
	return &models.CouponResult{Code: req.CouponCode, FinalAmount: req.Amount}, nil
}

func (f *FakeBackend) RegisterSquad(ctx context.Context, token, tournamentID string, payload models.SquadPayload) (*models.Registration, error) {
	f.record("RegisterSquad")
	if f.RegisterSquadFunc != nil {
		return f.RegisterSquadFunc(ctx, token, tournamentID, payload)
	}
	return &models.Registration{ID: "reg-squad", TournamentID: tournamentID}, nil
}

func (f *FakeBackend) RegisterSoloDuo(ctx context.Context, token, tournamentID string, payload models.RegistrationPayload) (*models.Registration, error) {
	f.record("RegisterSoloDuo")
	if f.RegisterSoloDuoFunc != nil {
		return f.RegisterSoloDuoFunc(ctx, token, tournamentID, payload)
	}
	return &models.Registration{ID: "reg-solo-duo", TournamentID: tournamentID}, nil
}

func (f *FakeBackend) SubmitManualPayment(ctx context.Context, token, tournamentID string, sub models.ManualPaymentSubmission) error {
	f.record("SubmitManualPayment")
	if f.SubmitManualPaymentFunc != nil {
		return f.SubmitManualPaymentFunc(ctx, token, tournamentID, sub)
	}
	return nil
}

func (f *FakeBackend) GetWallet(ctx context.Context, token string) (*models.Wallet, error) {
	f.record("GetWallet")
	if f.GetWalletFunc != nil {
		return f.GetWalletFunc(ctx, token)
	}
	return &models.Wallet{}, nil
}

func (f *FakeBackend) CreateTopUpOrder(ctx context.Context, token string, amount float64) (*models.CheckoutOrder, error) {
	f.record("CreateTopUpOrder")
	if f.CreateTopUpOrderFunc != nil {
		return f.CreateTopUpOrderFunc(ctx, token, amount)
	}
	return &models.CheckoutOrder{OrderID: "order_1"}, nil
}

func (f *FakeBackend) VerifyTopUp(ctx context.Context, token string, v models.PaymentVerification) error {
	f.record("VerifyTopUp")
	if f.VerifyTopUpFunc != nil {
		return f.VerifyTopUpFunc(ctx, token, v)
	}
	return nil
}

func (f *FakeBackend) Withdraw(ctx context.Context, token string, req models.WithdrawalRequest) (*models.Withdrawal, error) {
	f.record("Withdraw")
	if f.WithdrawFunc != nil {
		return f.WithdrawFunc(ctx, token, req)
	}
	return &models.Withdrawal{Amount: req.Amount, Status: models.WithdrawalPending}, nil
}

func (f *FakeBackend) SaveWithdrawalInfo(ctx context.Context, token string, info models.WithdrawalInfo) error {
	f.record("SaveWithdrawalInfo")
	if f.SaveWithdrawalInfoFunc != nil {
		return f.SaveWithdrawalInfoFunc(ctx, token, info)
	}
	return nil
}

func (f *FakeBackend) Login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	f.record("Login")
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, creds)
	}
	return "backend-token", &models.User{ID: "u1", Email: creds.Email, Role: models.RoleUser}, nil
}

func (f *FakeBackend) Me(ctx context.Context, token string) (*models.User, error) {
	f.record("Me")
	if f.MeFunc != nil {
		return f.MeFunc(ctx, token)
	}
	return &models.User{ID: "u1"}, nil
}

func (f *FakeBackend) CreateTournament(ctx context.Context, token string, in models.TournamentInput) (*models.Tournament, error) {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, token, in)
	}
	return &models.Tournament{ID: "t-new", Title: in.Title, BannerURL: in.BannerURL}, nil
}

func (f *FakeBackend) UpdateTournament(ctx context.Context, token, id string, in models.TournamentInput) (*models.Tournament, error) {
	f.record("UpdateTournament")
	if f.UpdateTournamentFunc != nil {
		return f.UpdateTournamentFunc(ctx, token, id, in)
	}
	return &models.Tournament{ID: id, Title: in.Title}, nil
}

func (f *FakeBackend) DeleteTournament(ctx context.Context, token, id string) error {
	f.record("DeleteTournament")
	return nil
}

func (f *FakeBackend) ListParticipants(ctx context.Context, token, tournamentID string) ([]models.Participant, error) {
	f.record("ListParticipants")
	return []models.Participant{}, nil
}

func (f *FakeBackend) DecidePayment(ctx context.Context, token, paymentID string, d models.PaymentDecision) error {
	f.record("DecidePayment")
	if f.DecidePaymentFunc != nil {
		return f.DecidePaymentFunc(ctx, token, paymentID, d)
	}
	return nil
}

func (f *FakeBackend) DeclareWinners(ctx context.Context, token, tournamentID string, d models.WinnerDeclaration) error {
	f.record("DeclareWinners")
	if f.DeclareWinnersFunc != nil {
		return f.DeclareWinnersFunc(ctx, token, tournamentID, d)
	}
	return nil
}

func (f *FakeBackend) ListCoupons(ctx context.Context, token string) ([]models.Coupon, error) {
	f.record("ListCoupons")
	return []models.Coupon{}, nil
}

func (f *FakeBackend) CreateCoupon(ctx context.Context, token string, in models.Coupon) (*models.Coupon, error) {
	f.record("CreateCoupon")
	return &in, nil
}

func (f *FakeBackend) UpdateCoupon(ctx context.Context, token, id string, in models.Coupon) (*models.Coupon, error) {
	f.record("UpdateCoupon")
	in.ID = id
	return &in, nil
}

func (f *FakeBackend) DeleteCoupon(ctx context.Context, token, id string) error {
	f.record("DeleteCoupon")
	return nil
}

func (f *FakeBackend) ListWithdrawals(ctx context.Context, token string, status *models.WithdrawalStatus) ([]models.Withdrawal, error) {
	f.record("ListWithdrawals")
	return []models.Withdrawal{}, nil
}

func (f *FakeBackend) ProcessWithdrawal(ctx context.Context, token, id string, d models.WithdrawalDecision) error {
	f.record("ProcessWithdrawal")
	if f.ProcessWithdrawalFunc != nil {
		return f.ProcessWithdrawalFunc(ctx, token, id, d)
	}
	return nil
}

// ------------------------
// Fake Notifier
// ------------------------

type FakeNotifier struct {
	mu     sync.Mutex
	toasts []models.Toast
}

func (f *FakeNotifier) Notify(userID string, level models.ToastLevel, message string) models.Toast {
	t := models.Toast{ID: userID, Level: level, Message: message}
	f.mu.Lock()
	f.toasts = append(f.toasts, t)
	f.mu.Unlock()
	return t
}

func (f *FakeNotifier) Toasts() []models.Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Toast{}, f.toasts...)
}

func (f *FakeNotifier) Last() models.Toast {
	ts := f.Toasts()
	if len(ts) == 0 {
		return models.Toast{}
	}
	return ts[len(ts)-1]
}

// ------------------------
// Fake Uploader
// ------------------------

type FakeUploader struct {
	Uploaded map[string][]byte
	Deleted  []string
	UploadFn func(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error)
}

func NewFakeUploader() *FakeUploader {
	return &FakeUploader{Uploaded: map[string][]byte{}}
}

func (f *FakeUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	if f.UploadFn != nil {
		return f.UploadFn(ctx, key, contentType, r)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.Uploaded[key] = b
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key), Size: int64(len(b))}, nil
}

func (f *FakeUploader) Delete(ctx context.Context, key string) error {
	f.Deleted = append(f.Deleted, key)
	delete(f.Uploaded, key)
	return nil
}

func (f *FakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.test/" + key
}

// ------------------------
// Fake Session Repository
// ------------------------

type FakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]models.AuthSession
}

func NewFakeSessionRepository() *FakeSessionRepository {
	return &FakeSessionRepository{sessions: map[string]models.AuthSession{}}
}

func (f *FakeSessionRepository) Create(ctx context.Context, s *models.AuthSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[s.ID]; ok {
		return repositories.ErrSessionConflict
	}
	f.sessions[s.ID] = *s
	return nil
}

func (f *FakeSessionRepository) GetByID(ctx context.Context, id string) (*models.AuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return &s, nil
}

func (f *FakeSessionRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *FakeSessionRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func (f *FakeSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}
