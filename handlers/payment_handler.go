package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/saoodchoudhary/rbmesports/services"
)

type ManualPayments interface {
	SubmitManualPayment(ctx context.Context, actor services.Actor, in services.ManualPaymentInput) error
}

type PaymentHandler struct {
	payments ManualPayments
}

func NewPaymentHandler(payments ManualPayments) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// SubmitManualPayment godoc
// @Summary Отправить скриншот оплаты
// @Description Загружает подтверждение перевода для проверки администратором.
// @Tags payments
// @Accept multipart/form-data
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param transactionId formData string true "ID транзакции"
// @Param amount formData number true "Сумма"
// @Param screenshot formData file true "Скриншот (jpeg, png, webp)"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/payments/manual [post]
func (h *PaymentHandler) SubmitManualPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxProofUploadSize+1<<20)
	if err := r.ParseMultipartForm(services.MaxProofUploadSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
	if err != nil {
		amount = 0
	}

	file, header, err := r.FormFile("screenshot")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			mapServiceErrorToHTTP(w, r, services.ErrProofRequired)
			return
		}
		badRequestResponse(w, r, fmt.Errorf("failed to get screenshot from form: %w", err))
		return
	}
	defer file.Close()

	if header.Size > services.MaxProofUploadSize {
		badRequestResponse(w, r, fmt.Errorf("screenshot must not be larger than %d bytes", services.MaxProofUploadSize))
		return
	}

	err = h.payments.SubmitManualPayment(r.Context(), actor, services.ManualPaymentInput{
		TournamentID:  chi.URLParam(r, "tournamentID"),
		TransactionID: r.FormValue("transactionId"),
		Amount:        amount,
		ContentType:   header.Header.Get("Content-Type"),
		Proof:         file,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusAccepted, jsonResponse{"status": "submitted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
