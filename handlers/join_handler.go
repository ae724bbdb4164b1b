package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/services"
)

// JoinFlow is the join-modal state machine as seen by the HTTP layer.
type JoinFlow interface {
	Open(ctx context.Context, actor services.Actor, tournamentID string) (*models.JoinView, error)
	View(actor services.Actor) (*models.JoinView, error)
	SetTab(actor services.Actor, tab models.JoinTab) (*models.JoinView, error)
	UpdateComposition(actor services.Actor, in models.CompositionInput) (*models.JoinView, error)
	SetCouponCode(actor services.Actor, code string) (*models.JoinView, error)
	ApplyCoupon(ctx context.Context, actor services.Actor, code string) (*models.JoinView, error)
	ClearCoupon(actor services.Actor) (*models.JoinView, error)
	Register(ctx context.Context, actor services.Actor) (*models.RegistrationOutcome, error)
	Close(actor services.Actor)
}

type JoinHandler struct {
	joinService JoinFlow
}

func NewJoinHandler(joinService JoinFlow) *JoinHandler {
	return &JoinHandler{joinService: joinService}
}

// Open godoc
// @Summary Открыть форму регистрации
// @Description Начинает новую попытку регистрации; предыдущий черновик сбрасывается.
// @Tags join
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 201 {object} models.JoinView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/join [post]
func (h *JoinHandler) Open(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	view, err := h.joinService.Open(r.Context(), actor, chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, view)
}

// View godoc
// @Summary Текущее состояние регистрации
// @Tags join
// @Produce json
// @Success 200 {object} models.JoinView
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /join [get]
func (h *JoinHandler) View(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	view, err := h.joinService.View(actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// SetTab godoc
// @Summary Переключить вкладку
// @Description Переход на вкладку payment требует заполненного состава команды.
// @Tags join
// @Accept json
// @Produce json
// @Param body body object true "{\"tab\": \"details|team|payment\"}"
// @Success 200 {object} models.JoinView
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /join/tab [patch]
func (h *JoinHandler) SetTab(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	var input struct {
		Tab models.JoinTab `json:"tab"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.joinService.SetTab(actor, models.JoinTab(strings.ToLower(string(input.Tab))))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// UpdateComposition godoc
// @Summary Обновить состав команды
// @Tags join
// @Accept json
// @Produce json
// @Param body body models.CompositionInput true "Поля состава для типа турнира"
// @Success 200 {object} models.JoinView
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /join/composition [put]
func (h *JoinHandler) UpdateComposition(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	var input models.CompositionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.joinService.UpdateComposition(actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// SetCouponCode godoc
// @Summary Изменить код купона
// @Description Изменение кода сбрасывает ранее примененную скидку.
// @Tags join
// @Accept json
// @Produce json
// @Param body body object true "{\"couponCode\": \"...\"}"
// @Success 200 {object} models.JoinView
// @Security BearerAuth
// @Router /join/coupon-code [put]
func (h *JoinHandler) SetCouponCode(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	var input struct {
		CouponCode string `json:"couponCode"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.joinService.SetCouponCode(actor, input.CouponCode)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// ApplyCoupon godoc
// @Summary Применить купон
// @Description Проверяет купон в основном API. Тело запроса необязательно.
// @Tags join
// @Accept json
// @Produce json
// @Param body body object false "{\"couponCode\": \"...\"}"
// @Success 200 {object} models.JoinView
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /join/coupon [post]
func (h *JoinHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	var input struct {
		CouponCode string `json:"couponCode"`
	}
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil && !isEmptyBody(err) {
			badRequestResponse(w, r, err)
			return
		}
	}

	view, err := h.joinService.ApplyCoupon(r.Context(), actor, input.CouponCode)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// ClearCoupon godoc
// @Summary Убрать купон
// @Tags join
// @Produce json
// @Success 200 {object} models.JoinView
// @Security BearerAuth
// @Router /join/coupon [delete]
func (h *JoinHandler) ClearCoupon(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	view, err := h.joinService.ClearCoupon(actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// Register godoc
// @Summary Отправить регистрацию
// @Description Для платных турниров в ответе есть ссылка на страницу оплаты.
// @Tags join
// @Produce json
// @Success 201 {object} models.RegistrationOutcome
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /join/register [post]
func (h *JoinHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	outcome, err := h.joinService.Register(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, outcome)
}

// Close godoc
// @Summary Закрыть форму регистрации
// @Tags join
// @Success 204
// @Security BearerAuth
// @Router /join [delete]
func (h *JoinHandler) Close(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	h.joinService.Close(actor)
	w.WriteHeader(http.StatusNoContent)
}

func (h *JoinHandler) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := writeJSON(w, status, data, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func isEmptyBody(err error) bool {
	return err != nil && errors.Is(err, errEmptyBody)
}
