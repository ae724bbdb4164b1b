package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saoodchoudhary/rbmesports/backend"
	"github.com/saoodchoudhary/rbmesports/models"
)

func TestPaymentService_Handoff(t *testing.T) {
	svc := NewPaymentService(NewFakeBackend(), nil, &FakeNotifier{}, PaymentConfig{}, discardLogger())
	tr := models.Tournament{ID: "t1", ServiceFee: 500}

	h := svc.Handoff(tr, CalculateQuote(tr, nil), &models.Registration{ID: "r1"})
	assert.True(t, h.Required)
	assert.Equal(t, 500.0, h.Amount)
	assert.Equal(t, "/payment?amount=500&registrationId=r1&tournamentId=t1", h.RedirectURL)

	free := CalculateQuote(tr, &models.CouponResult{Code: "FREE", DiscountAmount: 500, FinalAmount: 0})
	assert.Equal(t, models.PaymentHandoff{}, svc.Handoff(tr, free, &models.Registration{ID: "r1"}))
}

func TestPaymentService_CreateTopUpOrder(t *testing.T) {
	fb := NewFakeBackend()
	fb.CreateTopUpOrderFunc = func(ctx context.Context, token string, amount float64) (*models.CheckoutOrder, error) {
		assert.Equal(t, 250.0, amount)
		return &models.CheckoutOrder{OrderID: "order_Abc", Amount: 25000, Currency: "INR"}, nil
	}
	svc := NewPaymentService(fb, nil, &FakeNotifier{}, PaymentConfig{CheckoutKeyID: "rzp_test_key"}, discardLogger())
	actor := testActor
	actor.User.Email = "rohit@example.test"
	actor.User.Phone = "9000000000"

	opts, err := svc.CreateTopUpOrder(context.Background(), actor, 250)
	require.NoError(t, err)
	assert.Equal(t, &models.CheckoutOptions{
		Key:         "rzp_test_key",
		Amount:      25000,
		Currency:    "INR",
		OrderID:     "order_Abc",
		Name:        "RBM Esports",
		Description: "Wallet top-up",
		Prefill:     models.CheckoutPrefill{Name: "Rohit", Email: "rohit@example.test", Contact: "9000000000"},
	}, opts)

	_, err = svc.CreateTopUpOrder(context.Background(), actor, 5)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")
	assert.Equal(t, 1, fb.Calls("CreateTopUpOrder"))
}

func TestPaymentService_VerifyTopUp(t *testing.T) {
	v := models.PaymentVerification{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}

	t.Run("forwards then refreshes wallet", func(t *testing.T) {
		fb := NewFakeBackend()
		notifier := &FakeNotifier{}
		fb.VerifyTopUpFunc = func(ctx context.Context, token string, got models.PaymentVerification) error {
			assert.Equal(t, v, got)
			return nil
		}
		fb.GetWalletFunc = func(ctx context.Context, token string) (*models.Wallet, error) {
			return &models.Wallet{Balance: 750}, nil
		}
		svc := NewPaymentService(fb, nil, notifier, PaymentConfig{}, discardLogger())

		w, err := svc.VerifyTopUp(context.Background(), testActor, v)
		require.NoError(t, err)
		assert.Equal(t, 750.0, w.Balance)
		assert.Equal(t, []string{"VerifyTopUp", "GetWallet"}, fb.Trace())
		assert.Equal(t, models.ToastSuccess, notifier.Last().Level)
	})

	t.Run("rejected verification skips refresh", func(t *testing.T) {
		fb := NewFakeBackend()
		notifier := &FakeNotifier{}
		fb.VerifyTopUpFunc = func(ctx context.Context, token string, got models.PaymentVerification) error {
			return &backend.APIError{StatusCode: 400, Message: "Invalid payment signature"}
		}
		svc := NewPaymentService(fb, nil, notifier, PaymentConfig{}, discardLogger())

		_, err := svc.VerifyTopUp(context.Background(), testActor, v)
		require.Error(t, err)
		assert.Equal(t, []string{"VerifyTopUp"}, fb.Trace())
		assert.Equal(t, "Invalid payment signature", notifier.Last().Message)
	})

	t.Run("incomplete callback", func(t *testing.T) {
		fb := NewFakeBackend()
		svc := NewPaymentService(fb, nil, &FakeNotifier{}, PaymentConfig{}, discardLogger())

		_, err := svc.VerifyTopUp(context.Background(), testActor, models.PaymentVerification{OrderID: "order_1"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
		assert.Empty(t, fb.Trace())
	})
}

func TestPaymentService_SubmitManualPayment(t *testing.T) {
	in := ManualPaymentInput{
		TournamentID:  "T-42",
		TransactionID: " UTR123 ",
		Amount:        400,
		ContentType:   "image/png",
		Proof:         strings.NewReader("png-bytes"),
	}

	t.Run("uploads proof and submits", func(t *testing.T) {
		fb := NewFakeBackend()
		uploader := NewFakeUploader()
		var sub models.ManualPaymentSubmission
		fb.SubmitManualPaymentFunc = func(ctx context.Context, token, tournamentID string, s models.ManualPaymentSubmission) error {
			assert.Equal(t, "T-42", tournamentID)
			sub = s
			return nil
		}
		svc := NewPaymentService(fb, uploader, &FakeNotifier{}, PaymentConfig{}, discardLogger())

		require.NoError(t, svc.SubmitManualPayment(context.Background(), testActor, in))
		require.Len(t, uploader.Uploaded, 1)
		for key, body := range uploader.Uploaded {
			assert.True(t, strings.HasPrefix(key, "payment-proofs/t-42/rohit-"), key)
			assert.True(t, strings.HasSuffix(key, ".png"), key)
			assert.Equal(t, "png-bytes", string(body))
			assert.Equal(t, "https://cdn.example.test/"+key, sub.ScreenshotURL)
		}
		assert.Equal(t, "UTR123", sub.TransactionID)
		assert.Equal(t, 400.0, sub.Amount)
	})

	t.Run("backend rejection removes the uploaded proof", func(t *testing.T) {
		fb := NewFakeBackend()
		uploader := NewFakeUploader()
		fb.SubmitManualPaymentFunc = func(ctx context.Context, token, tournamentID string, s models.ManualPaymentSubmission) error {
			return &backend.APIError{StatusCode: 409, Message: "Payment already submitted"}
		}
		svc := NewPaymentService(fb, uploader, &FakeNotifier{}, PaymentConfig{}, discardLogger())
		in := in
		in.Proof = strings.NewReader("png-bytes")

		err := svc.SubmitManualPayment(context.Background(), testActor, in)
		require.Error(t, err)
		assert.Empty(t, uploader.Uploaded)
		assert.Len(t, uploader.Deleted, 1)
	})

	t.Run("unsupported file type", func(t *testing.T) {
		svc := NewPaymentService(NewFakeBackend(), NewFakeUploader(), &FakeNotifier{}, PaymentConfig{}, discardLogger())
		in := in
		in.ContentType = "application/pdf"

		err := svc.SubmitManualPayment(context.Background(), testActor, in)
		assert.True(t, errors.Is(err, ErrUnsupportedFile))
	})

	t.Run("oversized proof is rejected whole", func(t *testing.T) {
		fb := NewFakeBackend()
		uploader := NewFakeUploader()
		svc := NewPaymentService(fb, uploader, &FakeNotifier{}, PaymentConfig{}, discardLogger())
		in := in
		in.Proof = strings.NewReader(strings.Repeat("x", MaxProofUploadSize+1))

		err := svc.SubmitManualPayment(context.Background(), testActor, in)
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.Empty(t, uploader.Uploaded)
		assert.Zero(t, fb.Calls("SubmitManualPayment"))
	})
}

func TestReadUpload(t *testing.T) {
	body, err := readUpload(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), body.Size())

	_, err = readUpload(strings.NewReader("abcde"), 4)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
