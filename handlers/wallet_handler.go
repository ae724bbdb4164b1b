package handlers

import (
	"context"
	"net/http"

	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/services"
)

type TopUpFlow interface {
	CreateTopUpOrder(ctx context.Context, actor services.Actor, amount float64) (*models.CheckoutOptions, error)
	VerifyTopUp(ctx context.Context, actor services.Actor, v models.PaymentVerification) (*models.Wallet, error)
}

type WalletHandler struct {
	walletService services.WalletService
	topUps        TopUpFlow
}

func NewWalletHandler(walletService services.WalletService, topUps TopUpFlow) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		topUps:        topUps,
	}
}

// GetWallet godoc
// @Summary Баланс и история кошелька
// @Tags wallet
// @Produce json
// @Success 200 {object} models.Wallet
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /wallet [get]
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	wallet, err := h.walletService.GetWallet(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, wallet, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTopUpOrder godoc
// @Summary Создать заказ на пополнение
// @Description Возвращает параметры для виджета оплаты.
// @Tags wallet
// @Accept json
// @Produce json
// @Param body body object true "{\"amount\": 500}"
// @Success 201 {object} models.CheckoutOptions
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /wallet/add-money/order [post]
func (h *WalletHandler) CreateTopUpOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	opts, err := h.topUps.CreateTopUpOrder(r.Context(), actor, input.Amount)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, opts, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// VerifyTopUp godoc
// @Summary Подтвердить пополнение
// @Description Передает ответ платежного виджета в основной API для проверки подписи.
// @Tags wallet
// @Accept json
// @Produce json
// @Param body body models.PaymentVerification true "Ответ виджета"
// @Success 200 {object} models.Wallet
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /wallet/add-money/verify [post]
func (h *WalletHandler) VerifyTopUp(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	var input models.PaymentVerification
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	wallet, err := h.topUps.VerifyTopUp(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, wallet, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Withdraw godoc
// @Summary Запрос на вывод средств
// @Tags wallet
// @Accept json
// @Produce json
// @Param body body models.WithdrawalRequest true "Сумма и способ"
// @Success 201 {object} models.Withdrawal
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /wallet/withdraw [post]
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	var input models.WithdrawalRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	withdrawal, err := h.walletService.Withdraw(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, withdrawal, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SaveWithdrawalInfo godoc
// @Summary Сохранить реквизиты для вывода
// @Tags wallet
// @Accept json
// @Param body body models.WithdrawalInfo true "UPI или банковский счет"
// @Success 204
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /wallet/withdrawal-info [post]
func (h *WalletHandler) SaveWithdrawalInfo(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	var input models.WithdrawalInfo
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.walletService.SaveWithdrawalInfo(r.Context(), actor, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
