package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saoodchoudhary/rbmesports/models"
)

var adminActor = Actor{UserID: "admin1", Token: "admin-token", Role: models.RoleAdmin}

func validTournamentInput() models.TournamentInput {
	end := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	return models.TournamentInput{
		Title:               "Erangel Cup",
		TournamentType:      models.TournamentSquad,
		ServiceFee:          500,
		PrizePool:           10000,
		MaxParticipants:     25,
		RegistrationEndDate: end,
		StartDate:           end.Add(2 * time.Hour),
	}
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	fb := NewFakeBackend()
	svc := NewAdminService(fb, nil, discardLogger())
	ctx := context.Background()

	_, err := svc.ListCoupons(ctx, testActor)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	err = svc.DeleteTournament(ctx, testActor, "t1")
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	err = svc.DecidePayment(ctx, testActor, "p1", models.PaymentDecision{Action: models.DecisionApprove, TransactionID: "x"})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	assert.Empty(t, fb.Trace())
}

func TestAdminService_CreateTournamentWithBanner(t *testing.T) {
	fb := NewFakeBackend()
	uploader := NewFakeUploader()
	var sent models.TournamentInput
	fb.CreateTournamentFunc = func(ctx context.Context, token string, in models.TournamentInput) (*models.Tournament, error) {
		sent = in
		return &models.Tournament{ID: "t9", Title: in.Title, BannerURL: in.BannerURL}, nil
	}
	svc := NewAdminService(fb, uploader, discardLogger())

	tr, err := svc.CreateTournament(context.Background(), adminActor, validTournamentInput(),
		&BannerUpload{ContentType: "image/jpeg", Body: strings.NewReader("jpeg")})
	require.NoError(t, err)

	assert.Equal(t, 4, sent.TeamSize)
	require.Len(t, uploader.Uploaded, 1)
	for key := range uploader.Uploaded {
		assert.True(t, strings.HasPrefix(key, "tournament-banners/erangel-cup-"), key)
		assert.Equal(t, "https://cdn.example.test/"+key, tr.BannerURL)
	}
}

func TestAdminService_OversizedBannerRejected(t *testing.T) {
	fb := NewFakeBackend()
	uploader := NewFakeUploader()
	svc := NewAdminService(fb, uploader, discardLogger())

	_, err := svc.CreateTournament(context.Background(), adminActor, validTournamentInput(),
		&BannerUpload{ContentType: "image/png", Body: strings.NewReader(strings.Repeat("x", MaxBannerUploadSize+1))})
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, uploader.Uploaded)
	assert.Zero(t, fb.Calls("CreateTournament"))
}

func TestAdminService_TournamentValidation(t *testing.T) {
	svc := NewAdminService(NewFakeBackend(), nil, discardLogger())

	in := validTournamentInput()
	in.Title = " "
	in.ServiceFee = 0
	in.StartDate = in.RegistrationEndDate.Add(-time.Hour)

	_, err := svc.CreateTournament(context.Background(), adminActor, in, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "serviceFee")
	assert.Contains(t, verr.Fields, "tournamentStartDate")

	free := validTournamentInput()
	free.IsFree = true
	free.ServiceFee = 99
	_, err = svc.CreateTournament(context.Background(), adminActor, free, nil)
	require.NoError(t, err)

	_, err = svc.CreateTournament(context.Background(), adminActor, validTournamentInput(),
		&BannerUpload{ContentType: "image/png", Body: strings.NewReader("png")})
	assert.ErrorIs(t, err, ErrUploadsUnavailable)
}

func TestAdminService_DecidePayment(t *testing.T) {
	tests := []struct {
		name     string
		decision models.PaymentDecision
		wantErr  bool
		field    string
	}{
		{name: "approve", decision: models.PaymentDecision{Action: models.DecisionApprove, TransactionID: "UTR1"}},
		{name: "approve without transaction", decision: models.PaymentDecision{Action: models.DecisionApprove}, wantErr: true, field: "transactionId"},
		{name: "reject", decision: models.PaymentDecision{Action: models.DecisionReject, Reason: "blurry screenshot"}},
		{name: "reject without reason", decision: models.PaymentDecision{Action: models.DecisionReject, Reason: "  "}, wantErr: true, field: "reason"},
		{name: "unknown action", decision: models.PaymentDecision{Action: "refund"}, wantErr: true, field: "action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFakeBackend()
			svc := NewAdminService(fb, nil, discardLogger())

			err := svc.DecidePayment(context.Background(), adminActor, "p1", tt.decision)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.field)
				assert.Empty(t, fb.Trace())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"DecidePayment"}, fb.Trace())
		})
	}
}

func TestAdminService_DeclareWinners(t *testing.T) {
	svc := NewAdminService(NewFakeBackend(), nil, discardLogger())
	ctx := context.Background()

	err := svc.DeclareWinners(ctx, adminActor, "t1", models.WinnerDeclaration{})
	assert.ErrorIs(t, err, ErrValidationFailed)

	err = svc.DeclareWinners(ctx, adminActor, "t1", models.WinnerDeclaration{Winners: []models.Winner{
		{UserID: "a", Position: 1, PrizeAmount: 5000},
		{UserID: "b", Position: 1, PrizeAmount: 2000},
		{UserID: "c", Position: 0, PrizeAmount: -1},
	}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, models.FieldErrors{
		"winners[1].position":    "Position is already taken",
		"winners[2].position":    "Position must be 1 or higher",
		"winners[2].prizeAmount": "Prize cannot be negative",
	}, verr.Fields)

	err = svc.DeclareWinners(ctx, adminActor, "t1", models.WinnerDeclaration{Winners: []models.Winner{
		{UserID: "a", Position: 1, PrizeAmount: 5000},
		{UserID: "b", Position: 2, PrizeAmount: 0},
	}})
	assert.NoError(t, err)
}

func TestAdminService_Coupons(t *testing.T) {
	fb := NewFakeBackend()
	svc := NewAdminService(fb, nil, discardLogger())
	ctx := context.Background()

	c, err := svc.CreateCoupon(ctx, adminActor, models.Coupon{Code: " save10 ", DiscountType: models.DiscountPercentage, DiscountValue: 10, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", c.Code)

	_, err = svc.CreateCoupon(ctx, adminActor, models.Coupon{Code: "BIG", DiscountType: models.DiscountPercentage, DiscountValue: 150})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.UpdateCoupon(ctx, adminActor, "c1", models.Coupon{Code: "FLAT", DiscountType: "bogus"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	assert.Equal(t, []string{"CreateCoupon"}, fb.Trace())
}

func TestAdminService_ProcessWithdrawal(t *testing.T) {
	fb := NewFakeBackend()
	svc := NewAdminService(fb, nil, discardLogger())
	ctx := context.Background()

	err := svc.ProcessWithdrawal(ctx, adminActor, "w1", models.WithdrawalDecision{Action: models.DecisionReject})
	assert.ErrorIs(t, err, ErrValidationFailed)
	require.NoError(t, svc.ProcessWithdrawal(ctx, adminActor, "w1", models.WithdrawalDecision{Action: models.DecisionApprove}))
	assert.Equal(t, []string{"ProcessWithdrawal"}, fb.Trace())
}
